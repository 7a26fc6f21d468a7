package repository

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type RegistryRepository interface {
	AddLink(link string) (bool, error)
	RemoveLink(link string) (bool, error)
	ListLinks() ([]string, error)
	AddKeyword(keyword string) (bool, error)
	RemoveKeyword(keyword string) (bool, error)
	ListKeywords() ([]string, error)
}

const registryRowID = 1

// PostgresRegistryRepository holds both sets as array columns on a single
// row. Mutations are read-modify-write, serialized by mu so two concurrent
// admin actions cannot lose each other's entries.
type PostgresRegistryRepository struct {
	mu sync.Mutex
	db *gorm.DB
}

func NewRegistryRepository(db *gorm.DB) RegistryRepository {
	return &PostgresRegistryRepository{db: db}
}

func (r *PostgresRegistryRepository) load() (*Registry, error) {
	var reg Registry
	err := r.db.First(&reg, "id = ?", registryRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Registry{ID: registryRowID}, nil
		}
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	return &reg, nil
}

func (r *PostgresRegistryRepository) save(reg *Registry) error {
	if err := r.db.Save(reg).Error; err != nil {
		return fmt.Errorf("failed to save registry: %w", err)
	}
	return nil
}

func contains(list pq.StringArray, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func remove(list pq.StringArray, value string) pq.StringArray {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}

func (r *PostgresRegistryRepository) AddLink(link string) (bool, error) {
	link = strings.TrimSpace(link)
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, err := r.load()
	if err != nil {
		return false, err
	}
	if contains(reg.WhitelistLinks, link) {
		return false, nil
	}
	reg.WhitelistLinks = append(reg.WhitelistLinks, link)
	return true, r.save(reg)
}

func (r *PostgresRegistryRepository) RemoveLink(link string) (bool, error) {
	link = strings.TrimSpace(link)
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, err := r.load()
	if err != nil {
		return false, err
	}
	if !contains(reg.WhitelistLinks, link) {
		return false, nil
	}
	reg.WhitelistLinks = remove(reg.WhitelistLinks, link)
	return true, r.save(reg)
}

func (r *PostgresRegistryRepository) ListLinks() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, err := r.load()
	if err != nil {
		return nil, err
	}
	return reg.WhitelistLinks, nil
}

func (r *PostgresRegistryRepository) AddKeyword(keyword string) (bool, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, err := r.load()
	if err != nil {
		return false, err
	}
	if contains(reg.ForbiddenKeywords, keyword) {
		return false, nil
	}
	reg.ForbiddenKeywords = append(reg.ForbiddenKeywords, keyword)
	return true, r.save(reg)
}

func (r *PostgresRegistryRepository) RemoveKeyword(keyword string) (bool, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, err := r.load()
	if err != nil {
		return false, err
	}
	if !contains(reg.ForbiddenKeywords, keyword) {
		return false, nil
	}
	reg.ForbiddenKeywords = remove(reg.ForbiddenKeywords, keyword)
	return true, r.save(reg)
}

func (r *PostgresRegistryRepository) ListKeywords() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, err := r.load()
	if err != nil {
		return nil, err
	}
	return reg.ForbiddenKeywords, nil
}
