package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/propertyhub/backend/internal/domain/property"
)

// CreatePropertyRequest creates a new property
type CreatePropertyRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Address string `json:"address" binding:"required,max=500"`
}

// PropertyResponse is the read model of a property
type PropertyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ToPropertyResponse converts a domain property to its read model
func ToPropertyResponse(p *property.Property) PropertyResponse {
	return PropertyResponse{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

// ToPropertyResponses converts a slice of domain properties
func ToPropertyResponses(properties []property.Property) []PropertyResponse {
	responses := make([]PropertyResponse, len(properties))
	for i := range properties {
		responses[i] = ToPropertyResponse(&properties[i])
	}
	return responses
}
