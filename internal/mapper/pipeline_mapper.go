package mapper

import (
	"edubook-be/internal/entity"
	"edubook-be/internal/model"
)

type PipelineMapper struct{}

func NewPipelineMapper() *PipelineMapper {
	return &PipelineMapper{}
}

// Session Mappers

func (m *PipelineMapper) SessionToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}
	return &entity.Session{
		Id:        s.Id,
		UserIP:    s.UserIP,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *PipelineMapper) SessionToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}
	return &model.Session{
		Id:        s.Id,
		UserIP:    s.UserIP,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Document Mappers

func (m *PipelineMapper) DocumentToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:           d.Id,
		SessionId:    d.SessionId,
		OriginalText: d.OriginalText,
		FileName:     d.FileName,
		FileType:     d.FileType,
		UploadedAt:   d.UploadedAt,
	}
}

func (m *PipelineMapper) DocumentToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:           d.Id,
		SessionId:    d.SessionId,
		OriginalText: d.OriginalText,
		FileName:     d.FileName,
		FileType:     d.FileType,
		UploadedAt:   d.UploadedAt,
	}
}

// GeneratedContent Mappers

func (m *PipelineMapper) ContentToEntity(c *model.GeneratedContent) *entity.GeneratedContent {
	if c == nil {
		return nil
	}
	return &entity.GeneratedContent{
		Id:              c.Id,
		DocumentId:      c.DocumentId,
		ContentType:     c.ContentType,
		UserPrompt:      c.UserPrompt,
		ContentMarkdown: c.ContentMarkdown,
		Version:         c.Version,
		AccuracyScore:   c.AccuracyScore,
		CreatedAt:       c.CreatedAt,
	}
}

func (m *PipelineMapper) ContentToModel(c *entity.GeneratedContent) *model.GeneratedContent {
	if c == nil {
		return nil
	}
	return &model.GeneratedContent{
		Id:              c.Id,
		DocumentId:      c.DocumentId,
		ContentType:     c.ContentType,
		UserPrompt:      c.UserPrompt,
		ContentMarkdown: c.ContentMarkdown,
		Version:         c.Version,
		AccuracyScore:   c.AccuracyScore,
		CreatedAt:       c.CreatedAt,
	}
}

// AgentLog Mappers

func (m *PipelineMapper) AgentLogToEntity(l *model.AgentLog) *entity.AgentLog {
	if l == nil {
		return nil
	}
	return &entity.AgentLog{
		Id:             l.Id,
		SessionId:      l.SessionId,
		AgentType:      l.AgentType,
		InputData:      l.InputData,
		OutputData:     l.OutputData,
		ProcessingTime: l.ProcessingTime,
		Timestamp:      l.Timestamp,
	}
}

func (m *PipelineMapper) AgentLogToModel(l *entity.AgentLog) *model.AgentLog {
	if l == nil {
		return nil
	}
	return &model.AgentLog{
		Id:             l.Id,
		SessionId:      l.SessionId,
		AgentType:      l.AgentType,
		InputData:      l.InputData,
		OutputData:     l.OutputData,
		ProcessingTime: l.ProcessingTime,
		Timestamp:      l.Timestamp,
	}
}

// ProcessingEvent Mappers

func (m *PipelineMapper) EventToEntity(e *model.ProcessingEvent) *entity.ProcessingEvent {
	if e == nil {
		return nil
	}
	return &entity.ProcessingEvent{
		Id:           e.Id,
		SessionId:    e.SessionId,
		EventType:    e.EventType,
		EventData:    e.EventData,
		CreatedAt:    e.CreatedAt,
		Acknowledged: e.Acknowledged,
	}
}

func (m *PipelineMapper) EventToModel(e *entity.ProcessingEvent) *model.ProcessingEvent {
	if e == nil {
		return nil
	}
	return &model.ProcessingEvent{
		Id:           e.Id,
		SessionId:    e.SessionId,
		EventType:    e.EventType,
		EventData:    e.EventData,
		CreatedAt:    e.CreatedAt,
		Acknowledged: e.Acknowledged,
	}
}

// RevisionHistory Mappers

func (m *PipelineMapper) RevisionToEntity(r *model.RevisionHistory) *entity.RevisionHistory {
	if r == nil {
		return nil
	}
	return &entity.RevisionHistory{
		Id:             r.Id,
		ContentId:      r.ContentId,
		UserFeedback:   r.UserFeedback,
		RevisedContent: r.RevisedContent,
		RevisionNumber: r.RevisionNumber,
		CreatedAt:      r.CreatedAt,
	}
}

func (m *PipelineMapper) RevisionToModel(r *entity.RevisionHistory) *model.RevisionHistory {
	if r == nil {
		return nil
	}
	return &model.RevisionHistory{
		Id:             r.Id,
		ContentId:      r.ContentId,
		UserFeedback:   r.UserFeedback,
		RevisedContent: r.RevisedContent,
		RevisionNumber: r.RevisionNumber,
		CreatedAt:      r.CreatedAt,
	}
}
