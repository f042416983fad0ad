package main

import (
	"log"

	"github.com/gamepedia/community-service/config"
	"github.com/gamepedia/community-service/internal/app"

	postgresDriver "github.com/gamepedia/community-service/internal/infrastructure/database/postgres"
	kafkaDriver "github.com/gamepedia/community-service/internal/infrastructure/message-queue/kafka"
)

func main() {
	config := config.CreateNewConfig()

	if err := postgresDriver.RunMigrations(config.PostgreSQLConfig.DBUsername, config.PostgreSQLConfig.DBPassword, config.PostgreSQLConfig.DBHost, config.PostgreSQLConfig.DBPort, config.PostgreSQLConfig.DBName); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db, err := postgresDriver.GetDBInstance(config.PostgreSQLConfig.DBUsername, config.PostgreSQLConfig.DBPassword, config.PostgreSQLConfig.DBHost, config.PostgreSQLConfig.DBPort, config.PostgreSQLConfig.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}

	producer := kafkaDriver.CreateKafkaProducer(config)

	server := app.App{
		DB:            db,
		Config:        config,
		KafkaProducer: producer,
	}

	server.Start()
}
