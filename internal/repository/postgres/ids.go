package postgres

import "github.com/google/uuid"

// newID generates row ids for inserts whose id is not caller-supplied
// (the public-signing upsert). Overridable in tests.
var newID = uuid.NewString
