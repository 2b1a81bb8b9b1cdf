package service

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/smartexpense/smartexpense/internal/config"
	"github.com/smartexpense/smartexpense/internal/repository"
)

// ErrInvalidInput is returned for payloads that pass structural validation
// but reference something unusable (e.g. an unconfigured EMI type).
var ErrInvalidInput = errors.New("invalid input")

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, log: log, config: cfg}
}
