package booking

import (
	supplierRepo "festivo/database/repository/supplier"
	"festivo/models"
)

// repoDirectory adapts the supplier repository to the Directory interface.
type repoDirectory struct {
	repo supplierRepo.SupplierRepository
}

// NewRepoDirectory wraps a supplier repository as a Directory.
func NewRepoDirectory(repo supplierRepo.SupplierRepository) Directory {
	return &repoDirectory{repo: repo}
}

func (d *repoDirectory) GetByID(id string) (*models.Supplier, error) {
	return d.repo.GetByID(id)
}

func (d *repoDirectory) FindByCategory(category, excludeID string) ([]models.Supplier, error) {
	return d.repo.GetByCategory(category, excludeID)
}
