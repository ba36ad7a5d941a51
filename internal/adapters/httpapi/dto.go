package httpapi

import "github.com/botlab-edu/botlab/pkg/domain"

// CommandDTO is the wire shape of one command node.
type CommandDTO struct {
	ID    string       `json:"id"`
	Kind  domain.Kind  `json:"kind"`
	Value int          `json:"value"`
	Body  []CommandDTO `json:"body,omitempty"`
}

// ProgramDTO is the wire shape of the full program plus the editing cursor.
type ProgramDTO struct {
	Commands        []CommandDTO `json:"commands"`
	ActiveContainer string       `json:"active_container,omitempty"`
}

// StateDTO is the wire shape of the observable robot state.
type StateDTO struct {
	Status          domain.RunStatus `json:"status"`
	Pose            domain.Pose      `json:"pose"`
	Path            domain.Path      `json:"path"`
	ActiveContainer string           `json:"active_container,omitempty"`
}

// insertRequest creates a new command. ContainerID nil means "use the active
// container"; an explicit empty string targets the root.
type insertRequest struct {
	Kind        domain.Kind `json:"kind"`
	Value       int         `json:"value"`
	ContainerID *string     `json:"container_id,omitempty"`
}

type updateRequest struct {
	Value int `json:"value"`
}

type containerRequest struct {
	ID string `json:"id"`
}

func mapCommand(cmd domain.Command) CommandDTO {
	dto := CommandDTO{
		ID:    cmd.ID(),
		Kind:  cmd.Kind(),
		Value: cmd.Value(),
	}
	if rep, isRepeat := cmd.(*domain.Repeat); isRepeat {
		dto.Body = mapCommands(rep.Body)
	}
	return dto
}

func mapCommands(list []domain.Command) []CommandDTO {
	if len(list) == 0 {
		return nil
	}
	out := make([]CommandDTO, len(list))
	for i, c := range list {
		out[i] = mapCommand(c)
	}
	return out
}
