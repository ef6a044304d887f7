package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"admissions-chatbot-be/internal/constant"
	"admissions-chatbot-be/internal/dto"
	"admissions-chatbot-be/internal/entity"
	"admissions-chatbot-be/internal/pkg/logger"
	"admissions-chatbot-be/internal/repository/specification"
	"admissions-chatbot-be/internal/repository/unitofwork"
	"admissions-chatbot-be/pkg/catalog"
	"admissions-chatbot-be/pkg/chat/extract"
	"admissions-chatbot-be/pkg/chat/guardrail"
	"admissions-chatbot-be/pkg/chat/intent"
	"admissions-chatbot-be/pkg/chat/policy"
	"admissions-chatbot-be/pkg/chat/stream"
	"admissions-chatbot-be/pkg/chat/synthesize"
	"admissions-chatbot-be/pkg/events"
	"admissions-chatbot-be/pkg/llm"
	natspub "admissions-chatbot-be/pkg/nats"
	"admissions-chatbot-be/pkg/rag"
)

type IChatService interface {
	ProcessMessage(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	ProcessMessageStream(ctx context.Context, req *dto.ChatRequest, sink stream.Sink)
	CreateSession(ctx context.Context, ownerId string) (*dto.SessionResponse, error)
}

type ChatService struct {
	uowFactory     unitofwork.RepositoryFactory
	extractor      *extract.Extractor
	classifier     *intent.Classifier
	synthesizer    *synthesize.Synthesizer
	catalogCache   *catalog.Cache
	engine         *rag.Engine
	llmProvider    llm.LLMProvider
	emitter        *stream.Emitter
	publisher      *natspub.Publisher
	requireSubject bool
	log            logger.ILogger
	chatLog        logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	extractor *extract.Extractor,
	classifier *intent.Classifier,
	synthesizer *synthesize.Synthesizer,
	catalogCache *catalog.Cache,
	engine *rag.Engine,
	llmProvider llm.LLMProvider,
	publisher *natspub.Publisher,
	requireSubject bool,
	log logger.ILogger,
	chatLog logger.ILogger,
) IChatService {
	return &ChatService{
		uowFactory:     uowFactory,
		extractor:      extractor,
		classifier:     classifier,
		synthesizer:    synthesizer,
		catalogCache:   catalogCache,
		engine:         engine,
		llmProvider:    llmProvider,
		emitter:        stream.NewEmitter(),
		publisher:      publisher,
		requireSubject: requireSubject,
		log:            log,
		chatLog:        chatLog,
	}
}

// turnResult is everything one turn produced, before delivery.
type turnResult struct {
	Answer    string
	SessionId string
	Options   []string
	Courses   []synthesize.Course
	Action    policy.Action
}

// ProcessMessage runs one atomic turn. Orchestration failures come
// back as an apologetic answer carrying the raw error text, never as a
// transport error.
func (s *ChatService) ProcessMessage(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	result, err := s.runTurn(ctx, req, nil)
	if err != nil {
		s.log.Error("chat", "turn failed", map[string]interface{}{"error": err.Error()})
		return &dto.ChatResponse{
			Answer:    fmt.Sprintf(constant.ApologyTemplate, err.Error()),
			SessionId: req.SessionId,
			Options:   []string{},
			Records:   []synthesize.Course{},
		}, nil
	}

	return &dto.ChatResponse{
		Answer:    result.Answer,
		SessionId: result.SessionId,
		Options:   orEmptyOptions(result.Options),
		Records:   orEmptyCourses(result.Courses),
	}, nil
}

// ProcessMessageStream runs one turn and frames the result for
// incremental delivery. The general-chat path passes oracle fragments
// through; everything else is computed fully, then segmented.
func (s *ChatService) ProcessMessageStream(ctx context.Context, req *dto.ChatRequest, sink stream.Sink) {
	// Once the consumer is gone we keep computing so the turn is still
	// persisted in full, but we stop sending.
	gone := false
	guarded := func(frame interface{}) error {
		if gone {
			return nil
		}
		if err := sink(frame); err != nil {
			gone = true
		}
		return nil
	}
	onFragment := func(fragment string) error {
		return guarded(stream.TextChunkFrame{TextChunk: fragment})
	}

	result, err := s.runTurn(ctx, req, onFragment)
	if err != nil {
		s.log.Error("chat", "stream turn failed", map[string]interface{}{"error": err.Error()})
		_ = s.emitter.EmitError(guarded, fmt.Sprintf(constant.ApologyTemplate, err.Error()))
		return
	}

	if result.Streamed {
		// Fragments already went out; close with the terminal frames.
		_ = guarded(stream.FinalTextFrame{Text: result.Answer, SessionId: result.SessionId})
	} else {
		_ = s.emitter.EmitText(ctx, guarded, result.Answer, result.SessionId)
	}
	_ = s.emitter.EmitOptions(guarded, result.Options)
	_ = s.emitter.EmitCourses(guarded, result.Courses)
}

// streamedTurnResult extends turnResult with delivery state.
type streamedTurnResult struct {
	turnResult
	Streamed bool // fragments already emitted via passthrough
}

func (s *ChatService) runTurn(ctx context.Context, req *dto.ChatRequest, onFragment llm.StreamFunc) (*streamedTurnResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions := uow.ChatSessionRepository()

	// 1. Resolve or create the session.
	session, err := s.resolveSession(ctx, uow, req)
	if err != nil {
		return nil, err
	}
	sessionId := session.Id.String()

	// 2. Extract this turn's slots against the live catalogs.
	branches := s.catalogCache.GetAllBranches(ctx)
	grades := s.catalogCache.GetAllGrades(ctx)
	subjects := s.catalogCache.GetAllSubjects(ctx)
	slots := s.extractor.Extract(ctx, req.Question, branches, grades, subjects)

	s.chatLog.Info("turn", "extraction", map[string]interface{}{
		"session": sessionId, "question": req.Question,
		"branch": deref(slots.Branch), "grade": deref(slots.Grade), "subject": deref(slots.Subject),
	})

	// 3. Reconcile and persist any newly filled slots.
	state := policy.State{
		Branch:       session.Branch,
		Grade:        session.Grade,
		Subject:      session.Subject,
		PendingQuery: session.PendingQuery,
	}
	state = policy.Reconcile(state, slots)
	if slots.Any() {
		patch := entity.ContextPatch{Branch: slots.Branch, Grade: slots.Grade, Subject: slots.Subject}
		if err := sessions.UpdateContext(ctx, session.Id, patch); err != nil {
			return nil, fmt.Errorf("persist slots: %w", err)
		}
	}

	// 4. Decide the action.
	decision := policy.Decide(ctx, state, slots.Any(), req.Question, s.requireSubject, s.classifier.Classify)

	// 5. Execute it.
	result := &streamedTurnResult{}
	result.SessionId = sessionId
	result.Action = decision.Action

	switch decision.Action {
	case policy.ActionAskBranch:
		result.Answer = fmt.Sprintf(constant.ClarifyTemplate, constant.SlotNameBranch)
		result.Options = branches
	case policy.ActionAskGrade:
		result.Answer = fmt.Sprintf(constant.ClarifyTemplate, constant.SlotNameGrade)
		result.Options = grades
	case policy.ActionAskSubject:
		result.Answer = fmt.Sprintf(constant.ClarifyTemplate, constant.SlotNameSubject)
		result.Options = subjects

	case policy.ActionAnswerPending, policy.ActionAnswerData:
		answer, courses, err := s.answerFromData(ctx, decision.Question, state)
		if err != nil {
			return nil, err
		}
		result.Answer = answer
		result.Courses = courses

	case policy.ActionAnswerGeneral:
		answer, streamed, err := s.answerGeneral(ctx, req.Question, onFragment)
		if err != nil {
			return nil, err
		}
		result.Answer = answer
		result.Streamed = streamed
		// Safety net: the oracle may have asked a clarifying question
		// the policy never planned for.
		result.Options = s.applyGuardrail(ctx, answer)
	}

	// 6. Pending-query bookkeeping.
	if decision.ReplacePending {
		q := decision.Question
		if err := sessions.UpdateContext(ctx, session.Id, entity.ContextPatch{PendingQuery: &q}); err != nil {
			return nil, fmt.Errorf("persist pending query: %w", err)
		}
	} else if decision.ClearPending {
		empty := ""
		if err := sessions.UpdateContext(ctx, session.Id, entity.ContextPatch{PendingQuery: &empty}); err != nil {
			return nil, fmt.Errorf("clear pending query: %w", err)
		}
	}

	// 7. Persist both halves of the turn.
	if err := s.persistTurn(ctx, uow, session, req.Question, result); err != nil {
		return nil, err
	}

	s.publishTurn(session, result)
	return result, nil
}

func (s *ChatService) resolveSession(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.ChatRequest) (*entity.ChatSession, error) {
	sessions := uow.ChatSessionRepository()

	if req.SessionId != "" {
		id, err := uuid.Parse(req.SessionId)
		if err != nil {
			return nil, fmt.Errorf("invalid session id: %w", err)
		}
		session, err := sessions.FindOne(ctx, specification.ByID{ID: id})
		if err != nil {
			return nil, fmt.Errorf("load session: %w", err)
		}
		if session != nil {
			return session, nil
		}
		// Unknown id: fall through and start fresh.
	}

	session := &entity.ChatSession{Id: uuid.New()}
	if req.OwnerId != "" {
		owner := req.OwnerId
		session.OwnerId = &owner
	}
	if err := sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (s *ChatService) answerFromData(ctx context.Context, question string, state policy.State) (string, []synthesize.Course, error) {
	subject := ""
	if state.Subject != nil {
		subject = *state.Subject
	}
	data := s.catalogCache.GetFilteredData(ctx, deref(state.Branch), deref(state.Grade), subject)

	result, err := s.synthesizer.Synthesize(ctx, question, data)
	if err != nil {
		return "", nil, err
	}
	s.chatLog.Info("turn", "data answer", map[string]interface{}{
		"question": question, "courses": len(result.Courses),
	})
	return result.Answer, result.Courses, nil
}

// answerGeneral answers from the knowledge base. With a fragment
// callback the oracle response is passed through incrementally;
// returns the full answer either way.
func (s *ChatService) answerGeneral(ctx context.Context, question string, onFragment llm.StreamFunc) (string, bool, error) {
	if !s.engine.Ready() {
		return constant.MsgEngineUnavailable, false, nil
	}

	passages, err := s.engine.Query(ctx, question)
	if err != nil {
		s.log.Warn("chat", "retrieval failed, answering without context", map[string]interface{}{"error": err.Error()})
	}
	contextText := "(không có)"
	if len(passages) > 0 {
		contextText = joinPassages(passages)
	}

	prompt := fmt.Sprintf(constant.GeneralChatPromptTemplate, contextText, question)
	history := []llm.Message{{Role: constant.RoleUser, Content: prompt}}

	if onFragment != nil {
		var full string
		err := s.llmProvider.ChatStream(ctx, history, func(fragment string) error {
			full += fragment
			return onFragment(fragment)
		}, llm.WithTemperature(0.3))
		if err != nil {
			return "", false, fmt.Errorf("generation oracle: %w", err)
		}
		return full, true, nil
	}

	answer, err := s.llmProvider.Chat(ctx, history, llm.WithTemperature(0.3))
	if err != nil {
		return "", false, fmt.Errorf("generation oracle: %w", err)
	}
	return answer, false, nil
}

func (s *ChatService) applyGuardrail(ctx context.Context, answer string) []string {
	switch guardrail.Scan(answer) {
	case guardrail.SlotGrade:
		return s.catalogCache.GetAllGrades(ctx)
	case guardrail.SlotBranch:
		return s.catalogCache.GetAllBranches(ctx)
	case guardrail.SlotSubject:
		return s.catalogCache.GetAllSubjects(ctx)
	}
	return nil
}

func (s *ChatService) persistTurn(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ChatSession, question string, result *streamedTurnResult) error {
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin turn tx: %w", err)
	}
	defer func() {
		_ = uow.Rollback()
	}()

	txMessages := uow.ChatMessageRepository()
	txSessions := uow.ChatSessionRepository()

	userMsg := &entity.ChatMessage{
		ChatSessionId: session.Id,
		Role:          constant.RoleUser,
		Content:       question,
	}
	if err := txMessages.Create(ctx, userMsg); err != nil {
		return fmt.Errorf("persist user message: %w", err)
	}

	// First user message names the conversation, once.
	if session.Title == nil {
		title := DeriveTitle(question)
		if err := txSessions.UpdateContext(ctx, session.Id, entity.ContextPatch{Title: &title}); err != nil {
			return fmt.Errorf("persist title: %w", err)
		}
		session.Title = &title
	}

	assistantMsg := &entity.ChatMessage{
		ChatSessionId: session.Id,
		Role:          constant.RoleAssistant,
		Content:       result.Answer,
		Options:       result.Options,
		Courses:       result.Courses,
	}
	if err := txMessages.Create(ctx, assistantMsg); err != nil {
		return fmt.Errorf("persist assistant message: %w", err)
	}

	return uow.Commit()
}

func (s *ChatService) publishTurn(session *entity.ChatSession, result *streamedTurnResult) {
	s.publisher.Publish(events.SubjectTurnCompleted, events.TurnCompleted{
		SessionId:   session.Id.String(),
		OwnerId:     deref(session.OwnerId),
		Action:      string(result.Action),
		OptionCount: len(result.Options),
		CourseCount: len(result.Courses),
		OccurredAt:  time.Now(),
	})
}

func (s *ChatService) CreateSession(ctx context.Context, ownerId string) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session := &entity.ChatSession{Id: uuid.New()}
	if ownerId != "" {
		session.OwnerId = &ownerId
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &dto.SessionResponse{
		Id:        session.Id.String(),
		CreatedAt: session.CreatedAt,
	}, nil
}

// DeriveTitle builds a session title from the first user message:
// verbatim up to 50 characters, truncated with an ellipsis beyond.
func DeriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= constant.TitleMaxLen {
		return content
	}
	return string(runes[:constant.TitleMaxLen]) + constant.TitleEllipsis
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orEmptyOptions(opts []string) []string {
	if opts == nil {
		return []string{}
	}
	return opts
}

func orEmptyCourses(courses []synthesize.Course) []synthesize.Course {
	if courses == nil {
		return []synthesize.Course{}
	}
	return courses
}

func joinPassages(passages []string) string {
	out := ""
	for i, p := range passages {
		if i > 0 {
			out += "\n---\n"
		}
		out += p
	}
	return out
}
