package domain

import "errors"

var (
	// ErrNoSession is returned when an answer arrives without an active session.
	ErrNoSession = errors.New("no active quiz session")
	// ErrEmptyTopic indicates the chosen topic has no questions.
	ErrEmptyTopic = errors.New("topic has no questions")
	// ErrStaleAnswer indicates the submitted index does not match the session cursor.
	ErrStaleAnswer = errors.New("answer targets a stale question")
	// ErrBadChoice indicates the submitted label is not one of a..d.
	ErrBadChoice = errors.New("unknown choice label")
	// ErrTopicNotFound indicates the catalog has no such topic.
	ErrTopicNotFound = errors.New("topic not found")
)
