package common

import "github.com/google/uuid"

type UUID = uuid.UUID

var NilUUID UUID

func NewUUID() UUID {
	return uuid.New()
}

func ParseUUID(value string) (UUID, error) {
	return uuid.Parse(value)
}
