// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/gardenlog/internal/app/backend"
	"github.com/dalemusser/gardenlog/internal/app/store/localkv"
)

// DBDeps holds the backend dependencies for the app.
//
// Exactly one storage medium is populated: MongoClient/MongoDatabase in
// connected mode, Local in local demo mode. Backend records which, plus the
// storage-layer knobs derived from config.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	Local         *localkv.Store
	Backend       backend.Config
}
