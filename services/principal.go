package services

import (
	"github.com/google/uuid"
	"github.com/priyanshu14077/NeuronPress/errs"
	"github.com/priyanshu14077/NeuronPress/models"
)

const RoleAdmin = "admin"

// Principal is the authenticated caller a mutating operation acts for.
type Principal struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanModify reports whether p may change the post.
func (p Principal) CanModify(post *models.Post) bool {
	return p.IsAdmin() || post.AuthorID == p.ID
}

func (p Principal) author() *models.Author {
	author := &models.Author{ID: p.ID, Name: p.Name}
	if p.Email != "" {
		email := p.Email
		author.Email = &email
	}
	if p.Role != "" {
		author.Role = p.Role
	}
	return author
}

func requirePrincipal(p Principal) error {
	if p.ID == uuid.Nil {
		return errs.Unauthorized
	}
	return nil
}
