// issue_token emite un JWT para consumir la API (integraciones, pruebas manuales).
//
// Uso: go run ./cmd/issue_token -company <id> -user <id> -role admin|bodeguero|vendedor
// Usa JWT_SECRET, JWT_ISSUER y JWT_EXPIRATION_MINUTES de la configuración.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/inventario-engine/pkg/config"
	"github.com/jhoicas/inventario-engine/pkg/jwt"
)

func main() {
	companyID := flag.String("company", "", "company_id del token (obligatorio)")
	userID := flag.String("user", "", "user_id del token")
	role := flag.String("role", jwt.RoleVendedor, "rol: admin, bodeguero o vendedor")
	minutes := flag.Int("minutes", 0, "vigencia en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	exp := cfg.JWT.Expiration
	if *minutes > 0 {
		exp = *minutes
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *userID, *companyID, *role, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Emitir token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
