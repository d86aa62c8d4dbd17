package application

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/domain/repository"
	"github.com/vecino/marketplace/pkg/notify"
)

type stubConversationRepo struct {
	mu       sync.Mutex
	convs    map[string]*entity.Conversation
	messages map[string][]*entity.Message
}

func newStubConversationRepo() *stubConversationRepo {
	return &stubConversationRepo{
		convs:    map[string]*entity.Conversation{},
		messages: map[string][]*entity.Message{},
	}
}

func conversationKey(participants []string, productID string) string {
	sorted := append([]string(nil), participants...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",") + "|" + productID
}

func (s *stubConversationRepo) FindByID(_ context.Context, id string) (*entity.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.convs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *stubConversationRepo) FindAll(_ context.Context, _ *repository.Page) ([]*entity.Conversation, error) {
	return nil, nil
}

func (s *stubConversationRepo) FindBy(_ context.Context, _ *entity.Conversation, _ *repository.Page) ([]*entity.Conversation, error) {
	return nil, nil
}

func (s *stubConversationRepo) Count(_ context.Context, _ *entity.Conversation) (int64, error) {
	return int64(len(s.convs)), nil
}

func (s *stubConversationRepo) Create(_ context.Context, c *entity.Conversation) (*entity.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	cp := *c
	s.convs[c.ID] = &cp
	out := cp
	return &out, nil
}

func (s *stubConversationRepo) Update(_ context.Context, id string, _ *entity.Conversation) (*entity.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.convs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *stubConversationRepo) Delete(_ context.Context, id string) (*entity.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.convs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(s.convs, id)
	return c, nil
}

func (s *stubConversationRepo) DeleteMany(_ context.Context, _ *entity.Conversation) (int64, error) {
	return 0, nil
}

func (s *stubConversationRepo) FindByParticipant(_ context.Context, userID string, _ *repository.Page) ([]*entity.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*entity.Conversation{}
	for _, c := range s.convs {
		for _, p := range c.Participants {
			if p == userID {
				cp := *c
				out = append(out, &cp)
				break
			}
		}
	}
	return out, nil
}

func (s *stubConversationRepo) FindByProduct(_ context.Context, productID string, _ *repository.Page) ([]*entity.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*entity.Conversation{}
	for _, c := range s.convs {
		if c.ProductID == productID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubConversationRepo) FindOrCreate(_ context.Context, participants []string, productID string) (*entity.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := conversationKey(participants, productID)
	for _, c := range s.convs {
		if conversationKey(c.Participants, c.ProductID) == key {
			cp := *c
			return &cp, nil
		}
	}
	c := &entity.Conversation{
		ID:           uuid.NewString(),
		Participants: append([]string(nil), participants...),
		ProductID:    productID,
		CreatedAt:    time.Now(),
	}
	s.convs[c.ID] = c
	cp := *c
	return &cp, nil
}

func (s *stubConversationRepo) GetMessages(_ context.Context, conversationID string, _ *repository.Page) ([]*entity.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*entity.Message{}
	for _, m := range s.messages[conversationID] {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (s *stubConversationRepo) AddMessage(_ context.Context, conversationID string, msg repository.NewMessage) (*entity.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.convs[conversationID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	m := &entity.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       msg.SenderID,
		RecipientID:    msg.RecipientID,
		Content:        msg.Content,
		Attachments:    msg.Attachments,
		CreatedAt:      time.Now(),
	}
	s.messages[conversationID] = append(s.messages[conversationID], m)
	c.LastMessageID = m.ID
	c.LastMessageAt = m.CreatedAt
	cp := *m
	return &cp, nil
}

func (s *stubConversationRepo) MarkMessagesAsRead(_ context.Context, conversationID string, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, m := range s.messages[conversationID] {
		if m.RecipientID == userID && !m.Read {
			m.Read = true
			n++
		}
	}
	return n, nil
}

func newMessagingService(convs *stubConversationRepo, users *stubUserRepo, pub *stubPublisher) *MessagingService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewMessagingService(convs, users, pub, logger)
}

func TestStartConversationRequiresTwoParticipants(t *testing.T) {
	svc := newMessagingService(newStubConversationRepo(), newStubUserRepo(), &stubPublisher{})

	_, err := svc.StartConversation(context.Background(), []string{uuid.NewString()}, "")
	assert.Error(t, err)
}

func TestStartConversationIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newMessagingService(newStubConversationRepo(), newStubUserRepo(), &stubPublisher{})

	a, b := uuid.NewString(), uuid.NewString()
	first, err := svc.StartConversation(ctx, []string{a, b}, "")
	require.NoError(t, err)
	second, err := svc.StartConversation(ctx, []string{b, a}, "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestSendMessageNotifiesRecipient(t *testing.T) {
	ctx := context.Background()
	convs := newStubConversationRepo()
	users := newStubUserRepo()
	pub := &stubPublisher{}
	svc := newMessagingService(convs, users, pub)

	recipient, err := users.Create(ctx, &entity.User{Email: "ben@example.com", Name: "Ben"})
	require.NoError(t, err)
	sender := uuid.NewString()

	c, err := svc.StartConversation(ctx, []string{sender, recipient.ID}, "")
	require.NoError(t, err)

	m, err := svc.SendMessage(ctx, c.ID, repository.NewMessage{
		SenderID:    sender,
		RecipientID: recipient.ID,
		Content:     "still available?",
	})
	require.NoError(t, err)
	assert.Equal(t, c.ID, m.ConversationID)

	require.Len(t, pub.jobs, 1)
	job, ok := pub.jobs[0].(notify.Job)
	require.True(t, ok)
	assert.Equal(t, recipient.ID, job.UserID)
	assert.Equal(t, "ben@example.com", job.Email)
	assert.Equal(t, string(entity.NotifyMessage), job.Type)
	assert.Equal(t, m.ID, job.Data["message_id"])
}

func TestSendMessageUnknownConversation(t *testing.T) {
	svc := newMessagingService(newStubConversationRepo(), newStubUserRepo(), &stubPublisher{})

	_, err := svc.SendMessage(context.Background(), uuid.NewString(), repository.NewMessage{Content: "hi"})
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestMarkReadCountsOnlyRecipientUnread(t *testing.T) {
	ctx := context.Background()
	convs := newStubConversationRepo()
	svc := newMessagingService(convs, newStubUserRepo(), &stubPublisher{})

	a, b := uuid.NewString(), uuid.NewString()
	c, err := svc.StartConversation(ctx, []string{a, b}, "")
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, c.ID, repository.NewMessage{SenderID: a, RecipientID: b, Content: "one"})
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, c.ID, repository.NewMessage{SenderID: a, RecipientID: b, Content: "two"})
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, c.ID, repository.NewMessage{SenderID: b, RecipientID: a, Content: "reply"})
	require.NoError(t, err)

	n, err := svc.MarkRead(ctx, c.ID, b)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = svc.MarkRead(ctx, c.ID, b)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
