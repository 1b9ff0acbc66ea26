package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgjwt "github.com/jhoicas/Conciliacion-api/pkg/jwt"
)

var validRoles = map[string]bool{"admin": true, "normal": true, "tercerizado": true}

func newTokenCmd(app *App) *cobra.Command {
	var (
		userID   string
		username string
		role     string
		minutes  int
	)
	cmd := &cobra.Command{
		Use:     "token",
		Short:   "Emite un JWT para probar la API (usa JWT_SECRET)",
		Example: `  conciliador token --usuario ana.souza --rol admin`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.Config.JWT.Secret == "" {
				return fmt.Errorf("JWT_SECRET no configurado")
			}
			if !validRoles[role] {
				return fmt.Errorf("--rol debe ser admin, normal o tercerizado")
			}
			if username == "" {
				return fmt.Errorf("--usuario es requerido")
			}
			if userID == "" {
				userID = username
			}
			if minutes <= 0 {
				minutes = app.Config.JWT.Expiration
			}
			tok, err := pkgjwt.Generate(app.Config.JWT.Secret, userID, username, role, app.Config.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "id", "", "user_id (default = usuario)")
	cmd.Flags().StringVar(&username, "usuario", "", "Nombre de usuario")
	cmd.Flags().StringVar(&role, "rol", "normal", "admin | normal | tercerizado")
	cmd.Flags().IntVar(&minutes, "minutos", 0, "Expiración en minutos (default JWT_EXPIRATION_MINUTES)")
	return cmd
}
