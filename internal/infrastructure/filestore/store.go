// Package filestore implementa los puertos de repositorio sobre archivos
// planos JSON: un documento por tenant más catálogos globales. Es el backend
// alterno a PostgreSQL (se elige uno al arrancar) y el backend determinista
// de los tests de casos de uso.
package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// Store mantiene el estado completo en memoria protegido por un RWMutex y lo
// vuelca a disco en cada escritura con tmp+rename (el archivo nunca queda a
// medio escribir).
type Store struct {
	dir string

	mu      sync.RWMutex
	tenants []*entity.Tenant
	users   []*entity.User
	byTen   map[string]*tenantData
}

// tenantData es el documento JSON de un tenant.
type tenantData struct {
	Customers   []*entity.Customer   `json:"customers"`
	Forms       []*entity.Form       `json:"forms"`
	Submissions []*entity.Submission `json:"submissions"`
	Invoices    []*entity.Invoice    `json:"invoices"`
}

type globalData struct {
	Tenants []*entity.Tenant `json:"tenants"`
	Users   []*entity.User   `json:"users"`
}

// New abre (o inicializa) el directorio de datos y carga todo el estado.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: crear directorio: %w", err)
	}
	s := &Store{dir: dir, byTen: make(map[string]*tenantData)}
	if err := s.loadAll(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) loadAll() error {
	var global globalData
	if err := readJSON(filepath.Join(s.dir, "global.json"), &global); err != nil {
		return err
	}
	s.tenants = global.Tenants
	s.users = global.Users

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("filestore: leer directorio: %w", err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "tenant_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		tenantID := strings.TrimSuffix(strings.TrimPrefix(name, "tenant_"), ".json")
		var td tenantData
		if err := readJSON(filepath.Join(s.dir, name), &td); err != nil {
			return err
		}
		s.byTen[tenantID] = &td
	}
	return nil
}

// tenant devuelve el documento del tenant, creándolo en memoria si no existe.
// Inserta en byTen: llamar solo desde escrituras, con s.mu tomado en exclusivo.
func (s *Store) tenant(tenantID string) *tenantData {
	td, ok := s.byTen[tenantID]
	if !ok {
		td = &tenantData{}
		s.byTen[tenantID] = td
	}
	return td
}

// tenantRead devuelve el documento del tenant sin insertarlo: un tenant no
// visto se lee como documento vacío. Seguro bajo RLock; también evita que
// consultas por tenants inexistentes hagan crecer el mapa.
func (s *Store) tenantRead(tenantID string) *tenantData {
	if td, ok := s.byTen[tenantID]; ok {
		return td
	}
	return &tenantData{}
}

// flushTenant persiste el documento de un tenant. Llamar con s.mu tomado.
func (s *Store) flushTenant(tenantID string) error {
	return writeJSON(filepath.Join(s.dir, "tenant_"+tenantID+".json"), s.byTen[tenantID])
}

// flushGlobal persiste tenants y usuarios. Llamar con s.mu tomado.
func (s *Store) flushGlobal() error {
	return writeJSON(filepath.Join(s.dir, "global.json"), globalData{Tenants: s.tenants, Users: s.users})
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("filestore: leer %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("filestore: decodificar %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("filestore: codificar %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("filestore: escribir %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("filestore: renombrar %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ── clones ────────────────────────────────────────────────────────────────────
// Los repos devuelven copias: mutar el resultado de un Get/List no toca el
// estado del store hasta el Update correspondiente.

func cloneCustomer(c *entity.Customer) *entity.Customer {
	if c == nil {
		return nil
	}
	out := *c
	out.MergedSourceIDs = append([]string(nil), c.MergedSourceIDs...)
	if c.LastSubmissionAt != nil {
		t := *c.LastSubmissionAt
		out.LastSubmissionAt = &t
	}
	return &out
}

func cloneSubmission(sub *entity.Submission) *entity.Submission {
	if sub == nil {
		return nil
	}
	out := *sub
	if sub.Values != nil {
		out.Values = make(map[string]any, len(sub.Values))
		for k, v := range sub.Values {
			out.Values[k] = v
		}
	}
	return &out
}

func cloneInvoice(inv *entity.Invoice) *entity.Invoice {
	if inv == nil {
		return nil
	}
	out := *inv
	return &out
}

func cloneForm(f *entity.Form) *entity.Form {
	if f == nil {
		return nil
	}
	out := *f
	out.Fields = append([]entity.FormField(nil), f.Fields...)
	return &out
}

func cloneTenant(t *entity.Tenant) *entity.Tenant {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	out := *u
	return &out
}
