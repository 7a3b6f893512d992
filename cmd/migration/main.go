package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hugohenrick/pdv-restaurante/internal/adapter/repository"
	"github.com/hugohenrick/pdv-restaurante/internal/config"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/user"
	"github.com/hugohenrick/pdv-restaurante/internal/infrastructure/database"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "migration",
		Short:         "Migrações do banco de dados do PDV",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(upCmd(), downCmd(), versionCmd(), seedAdminCmd())
	return cmd
}

// loadDatabaseConfig lê apenas o necessário para o banco; a chave JWT não é exigida aqui
func loadDatabaseConfig() (config.DatabaseConfig, error) {
	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrMissingJWTSecret) {
		return config.DatabaseConfig{}, err
	}
	if cfg == nil {
		return config.DatabaseConfig{}, err
	}
	return cfg.Database, nil
}

func withMigrator(fn func(m *database.Migrator) error) error {
	cfg, err := loadDatabaseConfig()
	if err != nil {
		return err
	}
	m, err := database.NewMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Aplica todas as migrações pendentes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *database.Migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				return printVersion(cmd, m)
			})
		},
	}
}

func downCmd() *cobra.Command {
	var (
		steps int
		all   bool
	)
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Desfaz migrações",
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				steps = 0
			} else if steps <= 0 {
				return fmt.Errorf("--steps deve ser positivo")
			}
			return withMigrator(func(m *database.Migrator) error {
				if err := m.Down(steps); err != nil {
					return err
				}
				return printVersion(cmd, m)
			})
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "Quantidade de migrações a desfazer")
	cmd.Flags().BoolVar(&all, "all", false, "Desfaz todas as migrações")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Mostra a versão atual do schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *database.Migrator) error {
				return printVersion(cmd, m)
			})
		},
	}
}

func printVersion(cmd *cobra.Command, m *database.Migrator) error {
	v, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if dirty {
		cmd.Printf("Versão do schema: %d (inconsistente)\n", v)
		return nil
	}
	cmd.Printf("Versão do schema: %d\n", v)
	return nil
}

func seedAdminCmd() *cobra.Command {
	var email, name, password string
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Cria o primeiro administrador",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadDatabaseConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			pool, err := database.NewPostgresPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			users := repository.NewUserRepository(pool)
			p, err := user.NewProfile(email, name, user.RoleAdmin, password)
			if err != nil {
				return err
			}
			if err := users.Create(ctx, p); err != nil {
				return err
			}
			cmd.Printf("Administrador %s criado\n", p.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email do administrador")
	cmd.Flags().StringVar(&name, "name", "Administrador", "Nome do administrador")
	cmd.Flags().StringVar(&password, "password", "", "Senha do administrador")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
