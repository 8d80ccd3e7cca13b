package dto

// MergeRequest entrada para fusionar dos clientes del mismo tenant.
// El origen se elimina al finalizar; el destino absorbe sus dependientes.
type MergeRequest struct {
	SourceID string `json:"source_id" validate:"required"`
	TargetID string `json:"target_id" validate:"required"`
}

// MergeResponse salida de una fusión completada.
type MergeResponse struct {
	Target               CustomerResponse `json:"target"`
	RepointedSubmissions int              `json:"repointed_submissions"`
	RepointedInvoices    int              `json:"repointed_invoices"`
}

// DuplicatePairResponse par de clientes que las reglas de identidad
// consideran el mismo contacto.
type DuplicatePairResponse struct {
	A         CustomerResponse `json:"a"`
	B         CustomerResponse `json:"b"`
	MatchedOn string           `json:"matched_on"` // email | name | phone
}

// DuplicateListResponse candidatos a merge de un tenant.
type DuplicateListResponse struct {
	Items []DuplicatePairResponse `json:"items"`
}
