package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
//
// Convención de clases: las fallas de regla de negocio son sentinelas de este
// paquete (o PartialMergeError); las fallas de I/O de almacenamiento llegan
// envueltas con %w desde infraestructura y no coinciden con ningún sentinela.
// El caller puede reintentar a ciegas solo las segundas.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// PartialMergeError indica que el merge quedó a medias: uno o más registros
// dependientes no pudieron ser reapuntados. El cliente origen NO fue borrado;
// reintentar el merge retoma donde quedó (el reapunte es idempotente).
type PartialMergeError struct {
	FailedSubmissionIDs []string
	FailedInvoiceIDs    []string
	Cause               error // primera causa observada, para diagnóstico
}

func (e *PartialMergeError) Error() string {
	var b strings.Builder
	b.WriteString("merge parcial: fallaron")
	if len(e.FailedSubmissionIDs) > 0 {
		fmt.Fprintf(&b, " %d submissions (%s)", len(e.FailedSubmissionIDs), strings.Join(e.FailedSubmissionIDs, ", "))
	}
	if len(e.FailedInvoiceIDs) > 0 {
		fmt.Fprintf(&b, " %d facturas (%s)", len(e.FailedInvoiceIDs), strings.Join(e.FailedInvoiceIDs, ", "))
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *PartialMergeError) Unwrap() error { return e.Cause }
