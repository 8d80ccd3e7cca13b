package crm

import (
	"time"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

// CustomerUseCase casos de uso de lectura y edición de clientes canónicos.
// La creación de clientes no pasa por aquí: solo el resolver de identidad
// crea clientes, y solo el coordinador de merge los borra.
type CustomerUseCase struct {
	customers   repository.CustomerRepository
	submissions repository.SubmissionRepository
	invoices    repository.InvoiceRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(
	customers repository.CustomerRepository,
	submissions repository.SubmissionRepository,
	invoices repository.InvoiceRepository,
) *CustomerUseCase {
	return &CustomerUseCase{customers: customers, submissions: submissions, invoices: invoices}
}

// List lista los clientes del tenant con paginación en memoria.
func (uc *CustomerUseCase) List(tenantID string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	if tenantID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	all, err := uc.customers.ListByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	total := len(all)
	start := page.Offset
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	items := make([]dto.CustomerResponse, 0, end-start)
	for _, c := range all[start:end] {
		items = append(items, dto.ToCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Get obtiene un cliente por ID dentro del tenant.
func (uc *CustomerUseCase) Get(tenantID, id string) (*dto.CustomerResponse, error) {
	c, err := uc.customers.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ToCustomerResponse(c)
	return &resp, nil
}

// Update edita atributos de contacto y notas de un cliente.
// No permite tocar contadores ni marcadores de merge.
func (uc *CustomerUseCase) Update(tenantID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.customers.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.City != nil {
		c.City = *in.City
	}
	if in.State != nil {
		c.State = *in.State
	}
	if in.Zip != nil {
		c.Zip = *in.Zip
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}
	c.UpdatedAt = time.Now()
	if err := uc.customers.Update(c); err != nil {
		return nil, err
	}
	resp := dto.ToCustomerResponse(c)
	return &resp, nil
}

// ListSubmissions historial de submissions de un cliente.
func (uc *CustomerUseCase) ListSubmissions(tenantID, customerID string) (*dto.SubmissionListResponse, error) {
	c, err := uc.customers.GetByID(tenantID, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	subs, err := uc.submissions.ListByCustomer(tenantID, customerID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SubmissionResponse, 0, len(subs))
	for _, s := range subs {
		items = append(items, dto.ToSubmissionResponse(s))
	}
	return &dto.SubmissionListResponse{Items: items}, nil
}

// ListInvoices facturas emitidas a un cliente.
func (uc *CustomerUseCase) ListInvoices(tenantID, customerID string) (*dto.InvoiceListResponse, error) {
	c, err := uc.customers.GetByID(tenantID, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	invs, err := uc.invoices.ListByCustomer(tenantID, customerID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(invs))
	for _, inv := range invs {
		items = append(items, dto.ToInvoiceResponse(inv))
	}
	return &dto.InvoiceListResponse{Items: items}, nil
}
