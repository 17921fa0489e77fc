package global

import (
	"aptamer_api/config"
	"aptamer_api/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	AptamerRuns string // Lịch sử các lần sinh/đột biến aptamer
}

// Các biến toàn cục
var (
	Validate             *validator.Validate                         // Validator cho request body
	MongoDB_Session      *mongo.Client                               // Phiên MongoDB, nil khi tắt lưu lịch sử
	MongoDB_ServerConfig *config.Configuration                       // Cấu hình server
	RegistryCollections  = registry.NewRegistry[*mongo.Collection]() // Registry các collections

	// Tên các collection
	MongoDB_ColNames = MongoDB_CollectionName{AptamerRuns: "aptamer_runs"}
)
