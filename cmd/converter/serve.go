package main

import (
	"ofx-converter/internal/api"
	"ofx-converter/internal/api/handlers"
	"ofx-converter/internal/api/middleware"
	"ofx-converter/internal/api/responses"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Inicia a API HTTP de conversão",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.load()
			if err != nil {
				return err
			}
			defer a.log.Sync()

			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			if !root.verbose {
				gin.SetMode(gin.ReleaseMode)
			}

			responses.InitLogger(a.log)
			var guards []gin.HandlerFunc
			if secret := a.cfg.Server.JWTSecret; secret != "" {
				guards = append(guards, middleware.RequireJWT([]byte(secret)))
			} else {
				a.log.Warn("JWT_SECRET não definido; rotas de conversão sem autenticação")
			}
			router := api.NewRouter(handlers.NewConverterHandler(a.service, a.cfg), guards...)

			a.log.Info("Converter Service iniciado", zap.String("port", a.cfg.Server.Port))
			if err := router.Run(":" + a.cfg.Server.Port); err != nil {
				a.log.Error("Falha ao iniciar o servidor de conversão", zap.Error(err))
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "porta HTTP (padrão da configuração)")
	return cmd
}
