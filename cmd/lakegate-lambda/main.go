package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	logger "github.com/sirupsen/logrus"
	"go.uber.org/dig"

	"github.com/rios0rios0/lakegate/internal"
	"github.com/rios0rios0/lakegate/internal/infrastructure/handlers"
)

func injectHandler() *handlers.BranchLifecycleHandler {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var handler *handlers.BranchLifecycleHandler
	if err := container.Invoke(func(h *handlers.BranchLifecycleHandler) {
		handler = h
	}); err != nil {
		panic(err)
	}

	return handler
}

func main() {
	//nolint:exhaustruct // Minimal JSONFormatter initialization with required fields only
	logger.SetFormatter(&logger.JSONFormatter{})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	lambda.Start(injectHandler().Handle)
}
