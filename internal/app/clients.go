package app

import (
	"fmt"

	"github.com/courseforge/courseforge-backend/internal/clients/cloudinary"
	"github.com/courseforge/courseforge-backend/internal/clients/elevenlabs"
	"github.com/courseforge/courseforge-backend/internal/clients/gamma"
	"github.com/courseforge/courseforge-backend/internal/clients/gcp"
	"github.com/courseforge/courseforge-backend/internal/clients/openai"
	"github.com/courseforge/courseforge-backend/internal/pkg/logger"
)

type Clients struct {
	Openai     openai.Client
	Gamma      gamma.Client
	Elevenlabs elevenlabs.Client
	Cloudinary cloudinary.Client
	GcpBucket  gcp.BucketService
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	openaiClient, err := openai.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	}

	gammaClient, err := gamma.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init gamma client: %w", err)
	}

	speechClient, err := elevenlabs.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init elevenlabs client: %w", err)
	}

	cloudinaryClient, err := cloudinary.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init cloudinary client: %w", err)
	}

	bucket, err := gcp.NewBucketService(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init bucket client: %w", err)
	}

	return Clients{
		Openai:     openaiClient,
		Gamma:      gammaClient,
		Elevenlabs: speechClient,
		Cloudinary: cloudinaryClient,
		GcpBucket:  bucket,
	}, nil
}
