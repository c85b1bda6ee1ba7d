package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/levenlabs/go-lflag"
	"github.com/raterudder/plancompare/pkg/log"
	"github.com/raterudder/plancompare/pkg/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const comparisonsCollection = "comparisons"

// FirestoreProvider implements the Database interface using Google Cloud
// Firestore. Each comparison is a document in the "comparisons" collection
// keyed by its period.
type FirestoreProvider struct {
	client    *firestore.Client
	projectID string
	database  string
}

// configuredFirestore sets up the Firestore provider.
// It registers flags for configuration.
func configuredFirestore() *FirestoreProvider {
	projectID := lflag.String("firestore-project-id", "", "Google Cloud Project ID for Firestore")
	database := lflag.String("firestore-database", "", "Google Cloud Firestore Database")
	emulator := lflag.String("firestore-emulator", "", "Use Firestore emulator")

	f := &FirestoreProvider{}

	lflag.Do(func() {
		f.projectID = *projectID
		f.database = *database

		// set this because that's how firestore client expects it
		if *emulator != "" {
			os.Setenv("FIRESTORE_EMULATOR_HOST", *emulator)
		}
	})

	return f
}

// Validate checks if the provider is properly configured.
func (f *FirestoreProvider) Validate() error {
	// Project ID may be empty and inferred from the environment.
	return nil
}

// Init initializes the Firestore client.
// This must be called before using the provider methods.
func (f *FirestoreProvider) Init(ctx context.Context) error {
	projectID := f.projectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	database := f.database
	if database == "" {
		database = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, database)
	if err != nil {
		return fmt.Errorf("failed to create firestore client (project=%s, database=%s): %w", projectID, database, err)
	}
	f.client = client
	return nil
}

// Close closes the Firestore client connection.
func (f *FirestoreProvider) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// PutComparison stores the comparison as a JSON blob so decimals keep their
// exact representation.
func (f *FirestoreProvider) PutComparison(ctx context.Context, c types.Comparison) error {
	if err := ValidatePeriod(c.Period); err != nil {
		return err
	}
	jsonBytes, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal comparison: %w", err)
	}
	_, err = f.client.Collection(comparisonsCollection).Doc(c.Period).Set(ctx, map[string]interface{}{
		"json":       string(jsonBytes),
		"computedAt": c.ComputedAt,
		"source":     c.Source,
	})
	if err != nil {
		return fmt.Errorf("failed to save comparison: %w", err)
	}
	return nil
}

// GetComparison retrieves the comparison stored for the period.
func (f *FirestoreProvider) GetComparison(ctx context.Context, period string) (types.Comparison, error) {
	if err := ValidatePeriod(period); err != nil {
		return types.Comparison{}, err
	}
	doc, err := f.client.Collection(comparisonsCollection).Doc(period).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.Comparison{}, fmt.Errorf("%w: %s", ErrComparisonNotFound, period)
		}
		return types.Comparison{}, fmt.Errorf("failed to fetch comparison doc: %w", err)
	}
	return decodeComparison(ctx, doc)
}

// ListComparisons retrieves every comparison ordered by period descending.
func (f *FirestoreProvider) ListComparisons(ctx context.Context) ([]types.Comparison, error) {
	iter := f.client.Collection(comparisonsCollection).
		OrderBy(firestore.DocumentID, firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var out []types.Comparison
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating comparisons: %w", err)
		}
		c, err := decodeComparison(ctx, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func decodeComparison(ctx context.Context, doc *firestore.DocumentSnapshot) (types.Comparison, error) {
	val, err := doc.DataAt("json")
	if err != nil {
		log.Ctx(ctx).WarnContext(ctx, "comparison doc missing json", slog.String("period", doc.Ref.ID), slog.Any("err", err))
		return types.Comparison{}, fmt.Errorf("comparison document %s missing 'json' field: %w", doc.Ref.ID, err)
	}
	jsonStr, ok := val.(string)
	if !ok {
		log.Ctx(ctx).WarnContext(ctx, "comparison doc json not string", slog.String("period", doc.Ref.ID))
		return types.Comparison{}, fmt.Errorf("comparison document %s 'json' field is not string", doc.Ref.ID)
	}
	var c types.Comparison
	if err := json.Unmarshal([]byte(jsonStr), &c); err != nil {
		log.Ctx(ctx).WarnContext(ctx, "failed to unmarshal comparison", slog.String("period", doc.Ref.ID), slog.Any("err", err))
		return types.Comparison{}, fmt.Errorf("failed to unmarshal comparison (id=%s): %w", doc.Ref.ID, err)
	}
	return c, nil
}
