package seeder

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"pulsepad-backend/src/logger"
	"pulsepad-backend/src/models"

	"go.uber.org/zap"
)

type UserStore interface {
	List(ctx context.Context, params models.PaginationParams, role string) ([]models.User, int64, error)
	Create(ctx context.Context, in models.UserInput) (*models.User, error)
}

type EmployeeCreator interface {
	Create(ctx context.Context, in models.EmployeeInput) (*models.Employee, error)
}

type ProjectCreator interface {
	Create(ctx context.Context, in models.ProjectInput) (*models.Project, error)
}

type CandidateCreator interface {
	Create(ctx context.Context, in models.CandidateInput) (*models.Candidate, error)
}

type TemplateCreator interface {
	CreateTemplate(ctx context.Context, actor models.Actor, in models.AssessmentTemplateInput) (*models.AssessmentTemplate, error)
}

// GeneratedPassword stores an e-mail and the password generated for it.
type GeneratedPassword struct {
	Email    string
	Password string
	Role     string
}

type Seeder struct {
	Users      UserStore
	Employees  EmployeeCreator
	Projects   ProjectCreator
	Candidates CandidateCreator
	Templates  TemplateCreator
}

type seedEmployee struct {
	Name       string
	Email      string
	Position   string
	Department string
	Skills     []string
}

var seedEmployees = []seedEmployee{
	{"Mina Park", "mina@pulsepad.io", "Frontend Engineer", "Engineering", []string{"react", "typescript"}},
	{"Lucas Ortega", "lucas@pulsepad.io", "Backend Engineer", "Engineering", []string{"go", "mongodb"}},
	{"Aisha Bello", "aisha@pulsepad.io", "QA Analyst", "Quality", []string{"testing", "cypress"}},
}

var seedTemplates = []models.AssessmentTemplateInput{
	{
		Name: "Daily engineering checklist",
		Items: []models.ChecklistItem{
			{Text: "Posted a daily update before noon", Weight: 1},
			{Text: "Pull requests reviewed within a day", Weight: 1},
			{Text: "Tests added for new code", Weight: 2},
		},
	},
	{
		Name: "Client communication",
		Items: []models.ChecklistItem{
			{Text: "Answered client messages the same day", Weight: 2},
			{Text: "Logged hours on the project board", Weight: 1},
		},
	},
}

// Run fills an empty database with a starter data set. It does nothing when
// any user account already exists.
func (s *Seeder) Run(ctx context.Context) ([]GeneratedPassword, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, total, err := s.Users.List(ctx, models.PaginationParams{Page: 1, Limit: 1, SortBy: "_id"}, "")
	if err != nil {
		return nil, fmt.Errorf("error checking existing users: %w", err)
	}
	if total > 0 {
		logger.Log.Info("⏭️  Users already exist, skipping seed")
		return nil, nil
	}

	logger.Log.Info("🌱 Starting seed process...")
	var generated []GeneratedPassword

	admin, pw, err := s.createUser(ctx, models.UserInput{Email: "admin@pulsepad.io", Name: "PulsePad Admin", Role: models.RoleAdmin})
	if err != nil {
		return nil, err
	}
	generated = append(generated, pw)
	actor := models.Actor{UserID: admin.ID.Hex(), Email: admin.Email, Role: admin.Role}

	employeeIDs := make([]string, 0, len(seedEmployees))
	for _, se := range seedEmployees {
		e, err := s.Employees.Create(ctx, models.EmployeeInput{
			Name:       se.Name,
			Email:      se.Email,
			Position:   se.Position,
			Department: se.Department,
			Skills:     se.Skills,
			JoinedAt:   time.Now(),
		})
		if err != nil {
			return generated, fmt.Errorf("error creating employee %s: %w", se.Email, err)
		}
		employeeIDs = append(employeeIDs, e.ID.Hex())

		_, pw, err := s.createUser(ctx, models.UserInput{Email: se.Email, Name: se.Name, Role: models.RoleEmployee, RefID: e.ID.Hex()})
		if err != nil {
			return generated, err
		}
		generated = append(generated, pw)
	}

	client, pw, err := s.createUser(ctx, models.UserInput{Email: "client@acme.test", Name: "Acme Corp", Role: models.RoleClient})
	if err != nil {
		return generated, err
	}
	generated = append(generated, pw)

	if _, err := s.Projects.Create(ctx, models.ProjectInput{
		Name:        "Acme customer portal",
		Description: "Self-service portal for Acme customers",
		Status:      models.ProjectActive,
		ClientID:    client.ID.Hex(),
		EmployeeIDs: employeeIDs,
		Progress:    35,
	}); err != nil {
		return generated, fmt.Errorf("error creating project: %w", err)
	}

	for _, t := range seedTemplates {
		if _, err := s.Templates.CreateTemplate(ctx, actor, t); err != nil {
			return generated, fmt.Errorf("error creating template %s: %w", t.Name, err)
		}
	}

	if s.Candidates != nil {
		if _, err := s.Candidates.Create(ctx, models.CandidateInput{
			Name:     "Jordan Lee",
			Email:    "jordan.lee@example.com",
			Position: "DevOps Engineer",
			Stage:    models.StageScreening,
		}); err != nil {
			return generated, fmt.Errorf("error creating candidate: %w", err)
		}
	}

	logger.Log.Info("✅ Seed completed", zap.Int("accounts", len(generated)))
	return generated, nil
}

func (s *Seeder) createUser(ctx context.Context, in models.UserInput) (*models.User, GeneratedPassword, error) {
	password, err := generateRandomPassword(12)
	if err != nil {
		return nil, GeneratedPassword{}, fmt.Errorf("error generating password for %s: %w", in.Email, err)
	}
	in.Password = password

	u, err := s.Users.Create(ctx, in)
	if err != nil {
		return nil, GeneratedPassword{}, fmt.Errorf("error creating user %s: %w", in.Email, err)
	}
	logger.Log.Info("✅ Created user", zap.String("email", u.Email), zap.String("role", u.Role))
	return u, GeneratedPassword{Email: u.Email, Password: password, Role: u.Role}, nil
}

func generateRandomPassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"
	password := make([]byte, length)

	for i := range password {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		password[i] = charset[num.Int64()]
	}
	return string(password), nil
}

// LogGeneratedPasswords prints the seeded credentials once so an operator can sign in.
func LogGeneratedPasswords(passwords []GeneratedPassword) {
	for _, p := range passwords {
		logger.Log.Info("🔑 Seeded account",
			zap.String("email", p.Email),
			zap.String("role", p.Role),
			zap.String("password", p.Password),
		)
	}
}
