// Package main demonstrates running simple-rbac without a database using
// in-memory repositories. Useful for quick development and for learning the
// API without PostgreSQL setup.
//
// Note: All data is lost when the server stops. For production, use cmd/rbac.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/tendant/chi-demo/app"

	"github.com/tendant/simple-rbac/pkg/role"
	roleapi "github.com/tendant/simple-rbac/pkg/role/api"
	"github.com/tendant/simple-rbac/pkg/user"
	userapi "github.com/tendant/simple-rbac/pkg/user/api"
	"github.com/tendant/simple-rbac/pkg/userrole"
	userroleapi "github.com/tendant/simple-rbac/pkg/userrole/api"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting in-memory rbac service (no database required)")

	userRepo := user.NewInMemoryUserRepository()
	roleRepo := role.NewInMemoryRoleRepository()
	userRoleRepo := userrole.NewInMemoryUserRoleRepository(userRepo, roleRepo)

	seedInitialData(userRepo)

	userService := user.NewUserService(userRepo)
	roleService := role.NewRoleService(roleRepo)
	userRoleService := userrole.NewUserRoleService(userRoleRepo)

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	server.R.Mount("/users", userapi.Handler(userapi.NewUserHandler(userService)))
	server.R.Mount("/roles", roleapi.Handler(roleapi.NewRoleHandler(roleService)))
	server.R.Mount("/user_roles", userroleapi.Handler(userroleapi.NewUserRoleHandler(userRoleService)))

	server.Run()
}

// seedInitialData mirrors the admin row the SQL migrations insert.
func seedInitialData(userRepo *user.InMemoryUserRepository) {
	age := int32(24)
	admin, err := userRepo.CreateUser(context.Background(), user.CreateUserParams{
		Name:  "admin",
		Email: "admin@gmail.com",
		Age:   &age,
	})
	if err != nil {
		slog.Error("Failed seeding admin user", "err", err)
		os.Exit(-1)
	}
	slog.Info("Seeded admin user", "id", admin.ID, "email", admin.Email)
}
