package supplier

import (
	"fmt"
	"time"

	supplierRepo "festivo/database/repository/supplier"
	"festivo/models"
	"festivo/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const authTokenDuration = 72 * time.Hour

// DefaultSupplierService is the concrete SupplierService.
type DefaultSupplierService struct {
	Repo supplierRepo.SupplierRepository
}

// Register creates the supplier account, hashes its credentials and issues
// the initial auth token.
func (s *DefaultSupplierService) Register(supplier *models.Supplier) (*models.Supplier, error) {
	if supplier.Profile.Email == "" || supplier.Security.Password == "" {
		return nil, NewValidationError("email and password are required")
	}
	if supplier.Profile.Category == "" {
		return nil, NewValidationError("supplier category is required")
	}
	if supplier.InheritsConnection && supplier.PrimarySupplierID == "" {
		return nil, NewValidationError("a secondary listing must reference its primary supplier")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(supplier.Security.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	supplier.ID = uuid.NewString()
	supplier.Security.Password = ""
	supplier.Security.PasswordHash = string(hash)
	supplier.Profile.Status = "active"
	supplier.CreatedAt = time.Now().UTC()
	supplier.UpdatedAt = supplier.CreatedAt

	token, err := utils.GenerateToken(supplier.ID, supplier.Profile.Email, authTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate auth token: %w", err)
	}
	supplier.Security.Token = token
	supplier.Security.TokenHash = utils.HashToken(token)

	if err := s.Repo.Create(supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return supplier, nil
}

// Authenticate verifies credentials and rotates the auth token.
func (s *DefaultSupplierService) Authenticate(email, password string) (*models.Supplier, error) {
	supplier, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, NewAuthError("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(supplier.Security.PasswordHash), []byte(password)); err != nil {
		return nil, NewAuthError("invalid email or password")
	}

	token, err := utils.GenerateToken(supplier.ID, supplier.Profile.Email, authTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate auth token: %w", err)
	}
	supplier.Security.Token = token
	supplier.Security.TokenHash = utils.HashToken(token)

	if err := s.Repo.UpdateSet(supplier.ID, map[string]interface{}{
		"security.tokenHash": supplier.Security.TokenHash,
		"updatedAt":          time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("failed to store auth token: %w", err)
	}
	return supplier, nil
}

// RevokeAuthToken clears the stored token hash, signing the supplier out.
func (s *DefaultSupplierService) RevokeAuthToken(id string) error {
	return s.Repo.UpdateSet(id, map[string]interface{}{
		"security.tokenHash": "",
		"updatedAt":          time.Now().UTC(),
	})
}

func (s *DefaultSupplierService) GetByID(id string) (*models.Supplier, error) {
	return s.Repo.GetByID(id)
}
