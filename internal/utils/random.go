package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/solera-dev/back-office/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonFirstNames = []string{
	"Anna", "Ben", "Clara", "David", "Elena", "Felix", "Greta", "Hanna",
	"Ivan", "Julia", "Karl", "Lena", "Marco", "Nora", "Oscar", "Paula",
	"Quentin", "Rosa", "Stefan", "Tina",
}
var commonLastNames = []string{
	"Müller", "Schmidt", "Schneider", "Fischer", "Weber", "Meyer", "Wagner",
	"Becker", "Schulz", "Hoffmann", "Rossi", "Bianchi", "Moreau", "Dubois",
	"Novak", "Kovacs", "Silva", "Santos", "Jansen", "Berg",
}

func GenerateRandomFullName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	last := commonLastNames[rand.Intn(len(commonLastNames))]
	return first + " " + last
}

var digits = "0123456789"

// GenerateUsernameFromFullName lowercases the name, strips diacritics it
// knows about, joins first and last name and appends a few digits so seeded
// accounts rarely collide.
func GenerateUsernameFromFullName(fullName string) string {
	replacer := strings.NewReplacer("ü", "u", "ö", "o", "ä", "a", "ß", "ss", "é", "e", "è", "e")
	username := replacer.Replace(strings.ToLower(strings.ReplaceAll(fullName, " ", ".")))

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Level:        domain.LevelStaff,
		IsActive:     true,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

// GenerateRandomAvailabilityRule produces a weekly rule for one user. Most
// rules are plain availability; a few are preferred with a raised priority.
func GenerateRandomAvailabilityRule(userID int64, locationID int64, roleID int64) *domain.Availability {
	dayOfWeek := int32(rand.Intn(7))
	startHour := rand.Intn(12)
	endHour := startHour + 6 + rand.Intn(6)
	if endHour > 23 {
		endHour = 23
	}

	startTime := fmt.Sprintf("%02d:00", startHour)
	endTime := fmt.Sprintf("%02d:00", endHour)

	rule := &domain.Availability{
		UserID:     userID,
		LocationID: &locationID,
		RoleID:     &roleID,
		DayOfWeek:  &dayOfWeek,
		StartTime:  &startTime,
		EndTime:    &endTime,
		Type:       domain.AvailabilityAvailable,
		Priority:   int32(rand.Intn(5) + 3),
		IsActive:   true,
	}

	if rand.Intn(4) == 0 {
		rule.Type = domain.AvailabilityPreferred
	}

	return rule
}
