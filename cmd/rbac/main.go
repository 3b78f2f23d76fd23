package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"

	"github.com/tendant/simple-rbac/pkg/rbacdb"
	"github.com/tendant/simple-rbac/pkg/role"
	roleapi "github.com/tendant/simple-rbac/pkg/role/api"
	"github.com/tendant/simple-rbac/pkg/user"
	userapi "github.com/tendant/simple-rbac/pkg/user/api"
	"github.com/tendant/simple-rbac/pkg/userrole"
	userroleapi "github.com/tendant/simple-rbac/pkg/userrole/api"
)

type RbacDbConfig struct {
	Host     string `env:"RBAC_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"RBAC_PG_PORT" env-default:"5432"`
	Database string `env:"RBAC_PG_DATABASE" env-default:"rbac_db"`
	User     string `env:"RBAC_PG_USER" env-default:"rbac"`
	Password string `env:"RBAC_PG_PASSWORD" env-default:"pwd"`
}

func (d RbacDbConfig) toDbConfig() dbutils.DbConfig {
	return dbutils.DbConfig{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Database,
		User:     d.User,
		Password: d.Password,
	}
}

type Config struct {
	RbacDbConfig RbacDbConfig
	AppConfig    app.AppConfig
}

func main() {

	godotenv.Load()

	config := Config{}
	cleanenv.ReadEnv(&config)

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	dbConfig := config.RbacDbConfig.toDbConfig()
	pool, err := dbutils.NewDbPool(context.Background(), dbConfig)
	if err != nil {
		slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
		os.Exit(-1)
	}

	err = rbacdb.Migrate(context.Background(), pool)
	if err != nil {
		slog.Error("Failed running migrations", "err", err)
		os.Exit(-1)
	}

	userService := user.NewUserService(user.NewPostgresUserRepository(pool))
	userHandler := userapi.NewUserHandler(userService)
	server.R.Mount("/users", userapi.Handler(userHandler))

	roleService := role.NewRoleService(role.NewPostgresRoleRepository(pool))
	roleHandler := roleapi.NewRoleHandler(roleService)
	server.R.Mount("/roles", roleapi.Handler(roleHandler))

	userRoleService := userrole.NewUserRoleService(userrole.NewPostgresUserRoleRepository(pool))
	userRoleHandler := userroleapi.NewUserRoleHandler(userRoleService)
	server.R.Mount("/user_roles", userroleapi.Handler(userRoleHandler))

	server.Run()

}
