// main.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

// Starts throwaway MariaDB and Redis containers for local development,
// creates the application database and user, and keeps the containers up
// until interrupted.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/joho/godotenv"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/go-sql-driver/mysql"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run the whiteboard dev containers (MariaDB + Redis) with the environment
variables from the .env file.

Usage:

devstack [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  devstack -f /path/to/something/.env
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	ctx := context.Background()

	dbPort := envOr("DB_PORT", "3306")
	dbName := envOr("DB_DATABASE", "whiteboard")
	dbUser := envOr("DB_USER", "whiteboard")
	dbPassword := envOr("DB_PASSWORD", "whiteboard")
	rootPassword := envOr("DB_ROOT_PASSWORD", "devroot")

	tcpDbPort, err := nat.NewPort("tcp", dbPort)
	if err != nil {
		log.Fatalf("Failed to create db port: %v", err)
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mariadb:11",
			ExposedPorts: []string{dbPort + "/tcp"},
			Env: map[string]string{
				"MARIADB_ROOT_PASSWORD": rootPassword,
			},
			WaitingFor: wait.ForListeningPort(tcpDbPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		log.Fatalf("Failed to start mariadb container: %v", err)
	}

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		log.Fatalf("Failed to start redis container: %v", err)
	}

	dbHost, err := dbContainer.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get db host: %v", err)
	}
	mappedDbPort, err := dbContainer.MappedPort(ctx, tcpDbPort)
	if err != nil {
		log.Fatalf("Failed to get db port: %v", err)
	}

	if err := initDatabase(dbHost, mappedDbPort, rootPassword, dbName, dbUser, dbPassword); err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}

	redisHost, err := redisContainer.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get redis host: %v", err)
	}
	mappedRedisPort, err := redisContainer.MappedPort(ctx, "6379/tcp")
	if err != nil {
		log.Fatalf("Failed to get redis port: %v", err)
	}

	log.Printf("MariaDB ready: DB_HOST=%s DB_PORT=%s DB_DATABASE=%s DB_USER=%s", dbHost, mappedDbPort.Port(), dbName, dbUser)
	log.Printf("Redis ready:   REDIS_URL=redis://%s:%s", redisHost, mappedRedisPort.Port())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)
	sig := <-sigs

	log.Printf("\nReceived signal: %v, terminating dev containers...\n", sig)
	if err := redisContainer.Terminate(ctx); err != nil {
		log.Printf("Failed to terminate redis container: %v", err)
	}
	if err := dbContainer.Terminate(ctx); err != nil {
		log.Printf("Failed to terminate mariadb container: %v", err)
	}
}

// initDatabase creates the application database and grants the app user.
func initDatabase(host string, port nat.Port, rootPassword, dbName, dbUser, dbPassword string) error {
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/", rootPassword, host, port.Port()))
	if err != nil {
		return err
	}
	defer db.Close()

	statements := []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbName),
		fmt.Sprintf("CREATE USER IF NOT EXISTS '%s'@'%%' IDENTIFIED BY '%s'", dbUser, dbPassword),
		fmt.Sprintf("GRANT ALL PRIVILEGES ON `%s`.* TO '%s'@'%%'", dbName, dbUser),
		"FLUSH PRIVILEGES",
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt, err)
		}
	}
	return nil
}
