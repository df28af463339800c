// Package domain contains the core domain entities and value objects for ballchaser.
//
// This package represents the innermost layer of the Clean Architecture. It has
// no dependencies on infrastructure concerns (transports, file system, logging)
// and contains only pure business logic.
//
// # Entities
//
//   - [Frame]: A row-major, 3-channel image buffer with its row stride
//   - [Zone]: The horizontal third of a row where the marker was first seen
//   - [VelocityCommand]: A (linear, angular) drive request
//   - [DebounceState]: The most recently emitted zone
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Focused on business rules and invariants
//   - Testable without mocks or external systems
package domain
