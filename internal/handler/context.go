package handler

type ContextKey string

var (
	LevelCtxKey      ContextKey = "level"
	SubCtxKey        ContextKey = "sub"
	MyInfoCtx        ContextKey = "myInfo"
	UserInfoCtx      ContextKey = "userInfo"
	LocationCtx      ContextKey = "location"
	RoleCtx          ContextKey = "role"
	ShiftTemplateCtx ContextKey = "shiftTemplate"
	ShiftCtx         ContextKey = "shift"
	AvailabilityCtx  ContextKey = "availability"
)
