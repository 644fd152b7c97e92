package interaction

import "errors"

var (
	// ErrNoPendingMove возвращается при подтверждении или отмене без ожидающего переноса
	ErrNoPendingMove = errors.New("interaction: no pending move")

	// ErrCommitInFlight возвращается при попытке отменить перенос, который уже сохраняется
	ErrCommitInFlight = errors.New("interaction: commit in flight")

	// ErrNoSelection возвращается при создании блока без выделенного диапазона
	ErrNoSelection = errors.New("interaction: no selection")

	// ErrEmptyTitle возвращается при создании блока без названия
	ErrEmptyTitle = errors.New("interaction: block title is required")

	// ErrCommitFailed оборачивает отказ хранилища
	ErrCommitFailed = errors.New("interaction: commit failed")
)
