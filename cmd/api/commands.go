package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yatube/cmd/app"
	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/database"
	"yatube/internal/service"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.JWTSecretKey == "" {
				return errors.New("JWT_SECRET_KEY не установлен в .env файле")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
				Handler:           a.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				// Starting the server
				slog.Info("сервер запущен", "addr", srv.Addr, "dbname", cfg.DB.DbNAME)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("ошибка запуска сервера: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			slog.Info("останавливаем сервер")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			return srv.Shutdown(shutdownCtx)
		},
	}
}

func migrateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			// ConnectDB applies the embedded migrations
			db, err := database.ConnectDB(cfg)
			if err != nil {
				return err
			}
			return db.CloseDB()
		},
	}
}

func groupCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage groups",
	}

	var req service.CreateGroupRequest
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			group, err := a.Services.Group.Create(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "группа %q создана (id=%d)\n", group.Slug, group.ID)
			return nil
		},
	}
	createCmd.Flags().StringVar(&req.Title, "title", "", "group title")
	createCmd.Flags().StringVar(&req.Slug, "slug", "", "unique group slug")
	createCmd.Flags().StringVar(&req.Description, "description", "", "group description")
	createCmd.MarkFlagRequired("title")
	createCmd.MarkFlagRequired("slug")

	deleteCmd := &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a group, its posts stay without a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Services.Group.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "группа %q удалена\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(createCmd, deleteCmd)
	return cmd
}

func userCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user with their posts, comments and follows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Services.User.DeleteUser(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "пользователь %q удалён\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(deleteCmd)
	return cmd
}

func cacheCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the page cache",
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop every cached page",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := cache.NewRedisClient(cmd.Context(), cfg.Cache.RedisURL)
			if err != nil {
				return err
			}
			pageCache := cache.NewRedisCache(client, cfg.Cache.Prefix)
			defer pageCache.Close()

			if err := pageCache.Clear(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "кеш очищен")
			return nil
		},
	}

	cmd.AddCommand(clearCmd)
	return cmd
}
