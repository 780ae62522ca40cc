package db

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type DBStorageOption func(*Storage)

func WithDB(db *gorm.DB) DBStorageOption {
	return func(s *Storage) {
		s.db = db
	}
}

// WithDistance selects DistanceL2 or DistanceCosine for Search.
func WithDistance(distance string) DBStorageOption {
	return func(s *Storage) {
		if distance != "" {
			s.distance = distance
		}
	}
}

// WithKnowledgeID scopes Search to one indexed knowledge base.
func WithKnowledgeID(id int64) DBStorageOption {
	return func(s *Storage) {
		s.knowledgeID = id
	}
}

func WithLogger(logger *zerolog.Logger) DBStorageOption {
	return func(s *Storage) {
		if logger != nil {
			s.logger = logger
		}
	}
}
