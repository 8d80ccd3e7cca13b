package entity

import "time"

// Submission es un envío crudo de un formulario. CustomerID queda vacío cuando
// el resolver no pudo establecer identidad (solo teléfono, por ejemplo); el
// coordinador de merge lo reapunta cuando su cliente es fusionado.
type Submission struct {
	ID         string
	TenantID   string
	FormID     string
	CustomerID string         // "" = sin identidad establecida
	Values     map[string]any // valores crudos por field ID, tal como llegaron
	CreatedAt  time.Time
}
