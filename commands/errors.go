package commands

import "errors"

var (
	// ErrNoDialer is returned when a Processor is configured without a Dialer.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrNotInitialized is returned when a Processor was not created via New.
	ErrNotInitialized = errors.New("processor not initialized")

	// ErrAlreadyClosed is returned when Close is called on a Processor that has
	// already been closed, or when writing to the transport after Close.
	ErrAlreadyClosed = errors.New("processor already closed")

	// ErrLoopRunning is returned when Loop is called while another Loop is
	// serving the same Processor.
	ErrLoopRunning = errors.New("loop already running")

	// ErrPeerAttached is returned when the configuration of a Processor is
	// changed while Loop is serving a peer.
	//
	// Handlers and grammar settings must be set up before calling Loop.
	ErrPeerAttached = errors.New("configuration locked while a peer is attached")

	// ErrInvalidBufferSize is returned by ConfigBuilder.Build for negative
	// buffer sizes.
	ErrInvalidBufferSize = errors.New("invalid buffer size")
)
