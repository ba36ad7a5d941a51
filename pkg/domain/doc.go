/*
Package domain contains the core domain models and pure logic for the botlab engine.

It defines the command tree a user authors (Move, Turn, Repeat), the structural
edit operations over it, and the geometric transition function that maps a
command and a robot pose to the next pose. This package is kept pure and free
of external dependencies like I/O or timing, following Hexagonal Architecture
principles.

# Key Entities

  - Command: One instruction node in the program tree (move, turn, or repeat block).
  - Program: The ordered top-level command sequence, edited via copy-on-write operations.
  - Pose: The robot's instantaneous position and heading.
  - Path: The recorded trail of positions visited by movement commands.
  - Hooks: Callbacks the host registers to observe pose, path and run-state changes.
*/
package domain
