// import_legacy genera un script SQL para poblar clientes desde el export XML
// del CRM anterior. El export viene en ISO-8859-1 con esta forma:
//
//	<export>
//	  <cliente id="..." nombre="..." email="..." telefono="...">
//	    <direccion calle="..." ciudad="..." depto="..." cp="..."/>
//	    <nota>...</nota>
//	  </cliente>
//	</export>
//
// Uso: go run ./cmd/import_legacy <tenant-id> [ruta/export.xml]
// Por defecto busca export.xml en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/090_seed_legacy.sql
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type legacyCustomer struct {
	id, name, email, phone    string
	address, city, state, zip string
	notes                     string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: import_legacy <tenant-id> [export.xml]")
		os.Exit(1)
	}
	tenantID := os.Args[1]
	xmlPath := "export.xml"
	if len(os.Args) > 2 {
		xmlPath = os.Args[2]
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := doc.ReadFromFile(xmlPath); err != nil {
		fmt.Fprintf(os.Stderr, "Leer XML: %v\n", err)
		os.Exit(1)
	}

	root := doc.SelectElement("export")
	if root == nil {
		fmt.Fprintln(os.Stderr, "XML sin elemento raíz <export>")
		os.Exit(1)
	}

	var customers []legacyCustomer
	for _, el := range root.SelectElements("cliente") {
		c := legacyCustomer{
			id:    strings.TrimSpace(el.SelectAttrValue("id", "")),
			name:  strings.TrimSpace(el.SelectAttrValue("nombre", "")),
			email: strings.TrimSpace(el.SelectAttrValue("email", "")),
			phone: strings.TrimSpace(el.SelectAttrValue("telefono", "")),
		}
		if c.id == "" || (c.name == "" && c.email == "") {
			continue // sin identidad utilizable, no importar
		}
		if dir := el.SelectElement("direccion"); dir != nil {
			c.address = strings.TrimSpace(dir.SelectAttrValue("calle", ""))
			c.city = strings.TrimSpace(dir.SelectAttrValue("ciudad", ""))
			c.state = strings.TrimSpace(dir.SelectAttrValue("depto", ""))
			c.zip = strings.TrimSpace(dir.SelectAttrValue("cp", ""))
		}
		if nota := el.SelectElement("nota"); nota != nil {
			c.notes = strings.TrimSpace(nota.Text())
		}
		customers = append(customers, c)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "090_seed_legacy.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Clientes importados del CRM anterior\n")
	fmt.Fprintf(out, "-- Generado desde %s para el tenant %s\n\n", filepath.Base(xmlPath), tenantID)

	for _, c := range customers {
		fmt.Fprintf(out,
			"INSERT INTO customers (id, tenant_id, name, email, phone, address, city, state, zip, notes, submission_count, merged_source_ids, created_at, updated_at)\n"+
				"VALUES ('legacy-%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', 0, '{}', now(), now())\n"+
				"ON CONFLICT (id) DO NOTHING;\n",
			escapeSQL(c.id), escapeSQL(tenantID),
			escapeSQL(c.name), escapeSQL(c.email), escapeSQL(c.phone),
			escapeSQL(c.address), escapeSQL(c.city), escapeSQL(c.state), escapeSQL(c.zip),
			escapeSQL(c.notes),
		)
	}

	fmt.Printf("Generado %s: %d clientes\n", outPath, len(customers))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
