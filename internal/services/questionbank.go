package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// QuestionBankService indexes uploaded company question documents into a
// vector store and retrieves the entries closest to a given resume/job pair.
// The whole service is optional: when QDRANT_URL is unset the pipeline runs
// without it.
type QuestionBankService interface {
	InitCollection() error
	IndexDocument(ctx context.Context, interviewID uuid.UUID, text string) error
	RetrieveContext(ctx context.Context, interviewID uuid.UUID, queryText string, limit int) (string, error)
}

type questionBankService struct {
	client         *qdrant.Client
	ai             AIService
	chunker        TextChunker
	collectionName string
	vectorSize     uint64
}

func NewQuestionBankService(urlStr, apiKey, collectionName string, ai AIService) (QuestionBankService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port unless the URL says otherwise
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &questionBankService{
		client:         client,
		ai:             ai,
		chunker:        NewTextChunker(),
		collectionName: collectionName,
		vectorSize:     768,
	}, nil
}

// InitCollection implements QuestionBankService.
func (q *questionBankService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// IndexDocument implements QuestionBankService. Old points for the interview
// are dropped first so re-uploads replace rather than accumulate.
func (q *questionBankService) IndexDocument(ctx context.Context, interviewID uuid.UUID, text string) error {
	if err := q.deleteByInterview(ctx, interviewID); err != nil {
		return err
	}

	chunks := q.chunker.ChunkText(text, 1000, 100)

	var points []*qdrant.PointStruct
	for _, chunk := range chunks {
		embedding, err := q.ai.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk: %w", err)
		}

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(uuid.New().ID())),
			Vectors: qdrant.NewVectors(embedding...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"interview_id": interviewID.String(),
				"text":         chunk,
			}),
		})
	}

	if len(points) == 0 {
		return nil
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	return nil
}

// RetrieveContext implements QuestionBankService.
func (q *questionBankService) RetrieveContext(ctx context.Context, interviewID uuid.UUID, queryText string, limit int) (string, error) {
	embedding, err := q.ai.GenerateEmbedding(ctx, queryText)
	if err != nil {
		return "", fmt.Errorf("failed to embed query: %w", err)
	}

	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("interview_id", interviewID.String()),
		},
	}

	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to search: %w", err)
	}

	var parts []string
	for i, point := range searchResult {
		if value, ok := point.Payload["text"]; ok {
			if val, ok := value.GetKind().(*qdrant.Value_StringValue); ok {
				parts = append(parts, fmt.Sprintf("--- Entry %d (Score: %.2f) ---\n%s",
					i+1, point.Score, strings.TrimSpace(val.StringValue)))
			}
		}
	}

	return strings.Join(parts, "\n\n"), nil
}

func (q *questionBankService) deleteByInterview(ctx context.Context, interviewID uuid.UUID) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("interview_id", interviewID.String()),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete old points: %w", err)
	}

	return nil
}
