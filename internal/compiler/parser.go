// Package compiler parses the botlab command script language into a program
// tree. The language is a thin authoring convenience for CLI hosts; graphical
// hosts build programs through the controller's editing surface instead.
//
// Grammar:
//
//	forward 2
//	back 1
//	right 90
//	repeat 4 { forward 1 right 90 }
//
// Repeat blocks nest to arbitrary depth.
package compiler

import (
	"fmt"

	"github.com/alecthomas/participle/v2"

	"github.com/botlab-edu/botlab/pkg/domain"
)

type script struct {
	Statements []*statement `parser:"@@*"`
}

type statement struct {
	Move   *moveStmt   `parser:"@@"`
	Turn   *turnStmt   `parser:"| @@"`
	Repeat *repeatStmt `parser:"| @@"`
}

type moveStmt struct {
	Dir   string `parser:"@('forward'|'back')"`
	Steps int    `parser:"@Int"`
}

type turnStmt struct {
	Dir     string `parser:"@('left'|'right')"`
	Degrees int    `parser:"@Int"`
}

type repeatStmt struct {
	Count int          `parser:"'repeat' @Int"`
	Body  []*statement `parser:"'{' @@* '}'"`
}

var parser = participle.MustBuild[script]()

// Parse converts script source into a program. Command identifiers are
// assigned fresh on every parse.
func Parse(source string) (domain.Program, error) {
	tree, err := parser.ParseString("script", source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	return lower(tree.Statements)
}

func lower(stmts []*statement) (domain.Program, error) {
	program := make(domain.Program, 0, len(stmts))
	for _, s := range stmts {
		cmd, err := lowerStatement(s)
		if err != nil {
			return nil, err
		}
		program = append(program, cmd)
	}
	return program, nil
}

func lowerStatement(s *statement) (domain.Command, error) {
	switch {
	case s.Move != nil:
		if s.Move.Dir == "back" {
			return domain.NewMoveBackward(s.Move.Steps), nil
		}
		return domain.NewMoveForward(s.Move.Steps), nil
	case s.Turn != nil:
		if s.Turn.Dir == "left" {
			return domain.NewTurnLeft(s.Turn.Degrees), nil
		}
		return domain.NewTurnRight(s.Turn.Degrees), nil
	case s.Repeat != nil:
		if s.Repeat.Count < 0 {
			return nil, fmt.Errorf("repeat count must not be negative, got %d", s.Repeat.Count)
		}
		body, err := lower(s.Repeat.Body)
		if err != nil {
			return nil, err
		}
		return domain.NewRepeat(s.Repeat.Count, body...), nil
	}
	return nil, fmt.Errorf("empty statement")
}
