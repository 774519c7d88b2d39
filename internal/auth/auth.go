// Package auth provides user authentication, role access control, and
// JWT session tokens over a static user directory.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/callsight/callsight/internal/knowledge"
)

// User is one directory entry. Passwords are plaintext because the
// directory is seeded demo data, not a credential store.
type User struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Password    string         `json:"-"`
	Role        knowledge.Role `json:"role"`
	Active      bool           `json:"isActive"`
	Department  string         `json:"department,omitempty"`
	AccessLevel int            `json:"accessLevel"` // 1-4, higher means more access
}

// roleAccess maps each role to the roles whose views it may assume.
var roleAccess = map[knowledge.Role][]knowledge.Role{
	knowledge.RoleEnterpriseLeader: {knowledge.RoleEnterpriseLeader, knowledge.RoleSupervisor, knowledge.RoleDeveloper, knowledge.RoleAgent},
	knowledge.RoleSupervisor:       {knowledge.RoleSupervisor, knowledge.RoleAgent},
	knowledge.RoleDeveloper:        {knowledge.RoleDeveloper},
	knowledge.RoleAgent:            {knowledge.RoleAgent},
}

// Service authenticates users and issues session tokens.
type Service struct {
	users    []User
	secret   []byte
	tokenTTL time.Duration
}

// NewService creates an auth service with the seeded directory. secret
// signs session tokens; ttl bounds their validity.
func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Service{
		users:    seedUsers(),
		secret:   []byte(secret),
		tokenTTL: ttl,
	}
}

// Authenticate checks credentials against the directory. Inactive users
// fail the same way as wrong credentials.
func (s *Service) Authenticate(email, password string) (*User, error) {
	for i := range s.users {
		u := &s.users[i]
		if u.Email == email && u.Password == password && u.Active {
			copy := *u
			return &copy, nil
		}
	}
	return nil, fmt.Errorf("invalid credentials")
}

// UserByID returns a directory entry, or nil if unknown.
func (s *Service) UserByID(id string) *User {
	for i := range s.users {
		if s.users[i].ID == id {
			copy := s.users[i]
			return &copy
		}
	}
	return nil
}

// AvailableRoles returns the role views a user may switch to.
func AvailableRoles(u *User) []knowledge.Role {
	return roleAccess[u.Role]
}

// CanAccessRole reports whether a user may assume the target role's view.
func CanAccessRole(u *User, target knowledge.Role) bool {
	for _, r := range AvailableRoles(u) {
		if r == target {
			return true
		}
	}
	return false
}

// Claims is the JWT payload for a session token.
type Claims struct {
	Name string         `json:"name"`
	Role knowledge.Role `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken creates a signed session token for an authenticated user.
func (s *Service) IssueToken(u *User) (string, error) {
	now := time.Now()
	claims := Claims{
		Name: u.Name,
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a session token, returning its claims.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func seedUsers() []User {
	return []User{
		{
			ID: "1", Name: "Sarah Chen", Email: "sarah.chen@callsight.io",
			Password: "admin123", Role: knowledge.RoleEnterpriseLeader,
			Active: true, Department: "Executive", AccessLevel: 4,
		},
		{
			ID: "2", Name: "Mike Rodriguez", Email: "mike.rodriguez@callsight.io",
			Password: "supervisor123", Role: knowledge.RoleSupervisor,
			Active: true, Department: "Operations", AccessLevel: 3,
		},
		{
			ID: "3", Name: "Alex Thompson", Email: "alex.thompson@callsight.io",
			Password: "dev123", Role: knowledge.RoleDeveloper,
			Active: true, Department: "Technology", AccessLevel: 2,
		},
		{
			ID: "4", Name: "Jessica Davis", Email: "jessica.davis@callsight.io",
			Password: "agent123", Role: knowledge.RoleAgent,
			Active: true, Department: "Customer Service", AccessLevel: 1,
		},
		{
			ID: "5", Name: "Robert Wilson", Email: "robert.wilson@callsight.io",
			Password: "agent123", Role: knowledge.RoleAgent,
			Active: false, Department: "Customer Service", AccessLevel: 1,
		},
	}
}
