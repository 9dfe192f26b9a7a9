package implementation

import (
	"context"
	"testing"
	"time"

	"edubook-be/internal/constant"
	"edubook-be/internal/entity"
	"edubook-be/internal/repository/contract"
	"edubook-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDocument(t *testing.T, ctx context.Context, docs contract.DocumentRepository, sessionId uuid.UUID) *entity.Document {
	t.Helper()
	doc := &entity.Document{
		Id:           uuid.New(),
		SessionId:    sessionId,
		OriginalText: "source text",
		FileName:     "notes.txt",
		FileType:     ".txt",
	}
	require.NoError(t, docs.Create(ctx, doc))
	return doc
}

func TestFindLatestBySessionIdPicksNewestAcrossDocuments(t *testing.T) {
	db := testDB(t)
	docs := NewDocumentRepository(db)
	contents := NewGeneratedContentRepository(db)
	ctx := context.Background()
	sessionId := uuid.New()
	base := time.Now().Add(-time.Minute)

	docA := seedDocument(t, ctx, docs, sessionId)
	docB := seedDocument(t, ctx, docs, sessionId)

	older := &entity.GeneratedContent{
		Id:              uuid.New(),
		DocumentId:      docA.Id,
		ContentType:     constant.ContentTypeEbook,
		ContentMarkdown: "older",
		Version:         1,
		CreatedAt:       base,
	}
	newer := &entity.GeneratedContent{
		Id:              uuid.New(),
		DocumentId:      docB.Id,
		ContentType:     constant.ContentTypeRevised,
		ContentMarkdown: "newer",
		Version:         2,
		CreatedAt:       base.Add(10 * time.Second),
	}
	require.NoError(t, contents.Create(ctx, older))
	require.NoError(t, contents.Create(ctx, newer))

	latest, err := contents.FindLatestBySessionId(ctx, sessionId)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, newer.Id, latest.Id)
	assert.Equal(t, "newer", latest.ContentMarkdown)
}

func TestFindLatestBySessionIdIgnoresOtherSessions(t *testing.T) {
	db := testDB(t)
	docs := NewDocumentRepository(db)
	contents := NewGeneratedContentRepository(db)
	ctx := context.Background()

	otherSession := uuid.New()
	doc := seedDocument(t, ctx, docs, otherSession)
	require.NoError(t, contents.Create(ctx, &entity.GeneratedContent{
		Id:              uuid.New(),
		DocumentId:      doc.Id,
		ContentType:     constant.ContentTypeEbook,
		ContentMarkdown: "body",
		Version:         1,
	}))

	latest, err := contents.FindLatestBySessionId(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestNextVersionIncrementsPerDocument(t *testing.T) {
	db := testDB(t)
	docs := NewDocumentRepository(db)
	contents := NewGeneratedContentRepository(db)
	ctx := context.Background()

	doc := seedDocument(t, ctx, docs, uuid.New())

	v, err := contents.NextVersion(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	require.NoError(t, contents.Create(ctx, &entity.GeneratedContent{
		Id:          uuid.New(),
		DocumentId:  doc.Id,
		ContentType: constant.ContentTypeEbook,
		Version:     1,
	}))
	require.NoError(t, contents.Create(ctx, &entity.GeneratedContent{
		Id:          uuid.New(),
		DocumentId:  doc.Id,
		ContentType: constant.ContentTypeRevised,
		Version:     2,
	}))

	v, err = contents.NextVersion(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	// Another document starts its own sequence.
	other := seedDocument(t, ctx, docs, uuid.New())
	v, err = contents.NextVersion(ctx, other.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestGeneratedContentFindOneNotFoundReturnsNil(t *testing.T) {
	contents := NewGeneratedContentRepository(testDB(t))

	content, err := contents.FindOne(context.Background(), specification.ByID{ID: uuid.New()})
	require.NoError(t, err)
	assert.Nil(t, content)
}

func TestGeneratedContentRoundTripsAccuracyScore(t *testing.T) {
	db := testDB(t)
	docs := NewDocumentRepository(db)
	contents := NewGeneratedContentRepository(db)
	ctx := context.Background()

	doc := seedDocument(t, ctx, docs, uuid.New())
	score := 87.5
	created := &entity.GeneratedContent{
		Id:            uuid.New(),
		DocumentId:    doc.Id,
		ContentType:   constant.ContentTypeEbook,
		AccuracyScore: &score,
		Version:       1,
	}
	require.NoError(t, contents.Create(ctx, created))

	found, err := contents.FindOne(ctx, specification.ByID{ID: created.Id})
	require.NoError(t, err)
	require.NotNil(t, found)
	require.NotNil(t, found.AccuracyScore)
	assert.Equal(t, 87.5, *found.AccuracyScore)
}
