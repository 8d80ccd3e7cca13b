package repository

import "github.com/jhoicas/Clientes-api/internal/domain/entity"

// SubmissionRepository define el puerto de persistencia para Submission.
type SubmissionRepository interface {
	Create(submission *entity.Submission) error
	GetByID(tenantID, id string) (*entity.Submission, error)
	// ListByCustomer enumera las submissions apuntando a un cliente; lo usa el
	// coordinador de merge para el reapunte y la API para el historial.
	ListByCustomer(tenantID, customerID string) ([]*entity.Submission, error)
	// Update persiste el registro completo (el merge reapunta CustomerID).
	Update(submission *entity.Submission) error
}
