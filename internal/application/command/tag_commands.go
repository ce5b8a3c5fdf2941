package command

type CreateTagCommand struct {
	Name string
}
