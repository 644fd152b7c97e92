package interaction

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// CommitKind вид сохраняемого изменения
type CommitKind int

const (
	CommitMoveBlock CommitKind = iota + 1
	CommitMoveAppointment
	CommitCreateBlock
)

func (k CommitKind) String() string {
	switch k {
	case CommitMoveBlock:
		return "move_block"
	case CommitMoveAppointment:
		return "move_appointment"
	case CommitCreateBlock:
		return "create_block"
	default:
		return "unknown"
	}
}

// Commit отложенная запись в хранилище. Run выполняет вызов не более одного раза,
// повторные вызовы возвращают результат первого
type Commit struct {
	Kind CommitKind

	once sync.Once
	run  func(ctx context.Context) error
	err  error
}

// Run выполняет сохранение и обновляет состояние машины по результату
func (c *Commit) Run(ctx context.Context) error {
	c.once.Do(func() {
		c.err = c.run(ctx)
	})
	return c.err
}

func (m *Machine) blockCommit(drag DragState) *Commit {
	candidate := drag.Candidate()
	return &Commit{
		Kind: CommitMoveBlock,
		run: func(ctx context.Context) error {
			err := m.committer.MoveBlock(ctx, candidate.ID(), candidate.TechnicianID, candidate.Start, candidate.End)

			m.mu.Lock()
			defer m.mu.Unlock()
			m.blockInFlight = false
			m.blockOverride = nil

			if err != nil {
				m.logger.Warn("interaction: move block %d failed, reverted: %v", candidate.ID(), err)
				return fmt.Errorf("%w: %w", ErrCommitFailed, err)
			}
			m.logger.Info("interaction: block %d moved to technician %d at %s", candidate.ID(), candidate.TechnicianID, candidate.Start.Format("15:04"))
			return nil
		},
	}
}

// Confirm подтверждает ожидающий перенос записи. При успешном сохранении перенос
// снимается, при отказе остаётся с LastError и может быть подтверждён повторно.
// Повторный вызов во время сохранения возвращает nil, nil
func (m *Machine) Confirm(notifyClient bool) (*Commit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending == nil {
		return nil, ErrNoPendingMove
	}
	if m.pendingInFlight {
		return nil, nil
	}
	m.pendingInFlight = true
	move := *m.pending

	return &Commit{
		Kind: CommitMoveAppointment,
		run: func(ctx context.Context) error {
			err := m.committer.MoveAppointment(ctx, move.EventID(), move.NewTechnicianID, move.NewTime, move.NewEnd(), notifyClient)

			m.mu.Lock()
			defer m.mu.Unlock()
			m.pendingInFlight = false

			if err != nil {
				if m.pending != nil {
					m.pending.LastError = err
				}
				m.logger.Warn("interaction: move appointment %d rejected: %v", move.EventID(), err)
				return fmt.Errorf("%w: %w", ErrCommitFailed, err)
			}

			m.pending = nil
			if m.phase == PhaseAwaitingConfirmation {
				m.phase = PhaseIdle
			}
			m.logger.Info("interaction: appointment %d moved to technician %d at %s (notify=%t)",
				move.EventID(), move.NewTechnicianID, move.NewTime.Format("15:04"), notifyClient)
			return nil
		},
	}, nil
}

// Discard отменяет ожидающий перенос, событие возвращается в исходное положение
func (m *Machine) Discard() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending == nil {
		return ErrNoPendingMove
	}
	if m.pendingInFlight {
		return ErrCommitInFlight
	}
	m.pending = nil
	if m.phase == PhaseAwaitingConfirmation {
		m.phase = PhaseIdle
	}
	return nil
}

// CreateBlock создаёт блок на выделенном диапазоне. При успехе выделение снимается,
// при отказе остаётся, чтобы диалог можно было отправить повторно
func (m *Machine) CreateBlock(title string) (*Commit, error) {
	title = strings.TrimSpace(title)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.selection == nil {
		return nil, ErrNoSelection
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if m.createInFlight {
		return nil, nil
	}
	m.createInFlight = true
	r := *m.selection

	return &Commit{
		Kind: CommitCreateBlock,
		run: func(ctx context.Context) error {
			err := m.committer.CreateBlock(ctx, r.TechnicianID, title, r.Start, r.End)

			m.mu.Lock()
			defer m.mu.Unlock()
			m.createInFlight = false

			if err != nil {
				m.logger.Warn("interaction: create block for technician %d failed: %v", r.TechnicianID, err)
				return fmt.Errorf("%w: %w", ErrCommitFailed, err)
			}
			m.selection = nil
			m.logger.Info("interaction: block %q created for technician %d", title, r.TechnicianID)
			return nil
		},
	}, nil
}

// ClearSelection закрывает диалог создания блока без сохранения
func (m *Machine) ClearSelection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selection = nil
}
