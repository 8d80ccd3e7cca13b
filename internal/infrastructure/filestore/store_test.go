package filestore_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/filestore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store — persistencia en archivos planos JSON con recarga.
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_SobreviveReapertura(t *testing.T) {
	dir := t.TempDir()

	s1, err := filestore.New(dir)
	require.NoError(t, err)
	customers := filestore.NewCustomerRepository(s1)
	last := time.Now().Round(time.Second)
	require.NoError(t, customers.Create(&entity.Customer{
		ID: "c1", TenantID: "t1", Name: "Ana", Email: "ana@x.com",
		SubmissionCount: 2, MergedSourceIDs: []string{"viejo-1"},
		CreatedAt: last, UpdatedAt: last, LastSubmissionAt: &last,
	}))
	require.NoError(t, filestore.NewTenantRepository(s1).Create(&entity.Tenant{ID: "t1", Name: "Negocio"}))

	// Nuevo proceso: mismo directorio.
	s2, err := filestore.New(dir)
	require.NoError(t, err)

	c, err := filestore.NewCustomerRepository(s2).GetByID("t1", "c1")
	require.NoError(t, err)
	require.NotNil(t, c, "el cliente debe sobrevivir la reapertura")
	assert.Equal(t, "Ana", c.Name)
	assert.Equal(t, 2, c.SubmissionCount)
	assert.Equal(t, []string{"viejo-1"}, c.MergedSourceIDs)
	require.NotNil(t, c.LastSubmissionAt)
	assert.True(t, last.Equal(*c.LastSubmissionAt))

	ten, err := filestore.NewTenantRepository(s2).GetByID("t1")
	require.NoError(t, err)
	require.NotNil(t, ten)
	assert.Equal(t, "Negocio", ten.Name)
}

// Mutar lo que devuelve un Get no toca el estado hasta el Update.
func TestStore_GetDevuelveCopia(t *testing.T) {
	s, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	customers := filestore.NewCustomerRepository(s)
	require.NoError(t, customers.Create(&entity.Customer{ID: "c1", TenantID: "t1", Name: "Original"}))

	c, err := customers.GetByID("t1", "c1")
	require.NoError(t, err)
	c.Name = "Mutado"

	otra, err := customers.GetByID("t1", "c1")
	require.NoError(t, err)
	assert.Equal(t, "Original", otra.Name)
}

func TestStore_UpdateInexistenteEsNotFound(t *testing.T) {
	s, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	err = filestore.NewCustomerRepository(s).Update(&entity.Customer{ID: "nope", TenantID: "t1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Ingesta de tenants distintos en paralelo: las lecturas de tenants aún no
// vistos no deben escribir el mapa compartido (detectable con -race).
func TestStore_LecturasConcurrentesDeTenantsNoVistos(t *testing.T) {
	s, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	customers := filestore.NewCustomerRepository(s)
	submissions := filestore.NewSubmissionRepository(s)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		tenantID := fmt.Sprintf("t%d", i)
		go func() {
			defer wg.Done()
			c, err := customers.GetByID(tenantID, "no-existe")
			assert.NoError(t, err)
			assert.Nil(t, c)
			_, err = customers.ListByTenant(tenantID)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := submissions.ListByCustomer(tenantID, "no-existe")
			assert.NoError(t, err)
			assert.NoError(t, customers.Create(&entity.Customer{
				ID: "c-" + tenantID, TenantID: tenantID, Name: "Ana",
			}))
		}()
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		tenantID := fmt.Sprintf("t%d", i)
		c, err := customers.GetByID(tenantID, "c-"+tenantID)
		require.NoError(t, err)
		require.NotNil(t, c, "el cliente creado en paralelo debe quedar persistido")
	}
}

func TestStore_CreateDuplicadoFalla(t *testing.T) {
	s, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	customers := filestore.NewCustomerRepository(s)
	require.NoError(t, customers.Create(&entity.Customer{ID: "c1", TenantID: "t1"}))
	assert.ErrorIs(t, customers.Create(&entity.Customer{ID: "c1", TenantID: "t1"}), domain.ErrDuplicate)
}
