package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/clientdesk/assignment-api/internal/models"
	"github.com/clientdesk/assignment-api/internal/repository"
	"github.com/clientdesk/assignment-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrClientNotFound     = errors.New("client not found")
	ErrClientNameRequired = errors.New("client name is required")
)

// ClientService handles client business logic
type ClientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// CreateClientInput represents input for creating a client
type CreateClientInput struct {
	Name         string
	ContactEmail string
}

// CreateClient creates a new client with a generated client code
func (s *ClientService) CreateClient(input CreateClientInput) (*models.Client, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrClientNameRequired
	}

	code, err := utils.GenerateClientCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate client code: %w", err)
	}

	client := &models.Client{
		Name:         strings.TrimSpace(input.Name),
		ContactEmail: strings.TrimSpace(input.ContactEmail),
		ClientCode:   code,
		Status:       models.ClientStatusActive,
	}

	if err := s.clientRepo.Create(client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// GetClient returns a client by id
func (s *ClientService) GetClient(id uint64) (*models.Client, error) {
	client, err := s.clientRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return client, nil
}

// ListClients returns clients with pagination
func (s *ClientService) ListClients(offset, limit int) ([]models.Client, int64, error) {
	clients, total, err := s.clientRepo.List(offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, total, nil
}

// UpdateClientInput represents input for updating a client
type UpdateClientInput struct {
	Name         *string
	ContactEmail *string
	Status       *models.ClientStatus
}

// UpdateClient updates an existing client
func (s *ClientService) UpdateClient(id uint64, input UpdateClientInput) (*models.Client, error) {
	client, err := s.GetClient(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrClientNameRequired
		}
		client.Name = strings.TrimSpace(*input.Name)
	}
	if input.ContactEmail != nil {
		client.ContactEmail = strings.TrimSpace(*input.ContactEmail)
	}
	if input.Status != nil {
		client.Status = *input.Status
	}

	if err := s.clientRepo.Update(client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return client, nil
}

// DeleteClient soft deletes a client
func (s *ClientService) DeleteClient(id uint64) error {
	if _, err := s.GetClient(id); err != nil {
		return err
	}
	if err := s.clientRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}
