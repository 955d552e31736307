// Package idgen implements the flexible task-identifier parser of spec
// §4.5: bare integers, zero-padded integers, and slug:NNN pairs.
package idgen

import (
	"strconv"
	"strings"

	"github.com/ajmorgan/taskgraph/internal/engineerr"
)

// ParsedID is the result of parsing a user-supplied task identifier. If
// Slug is empty, SurrogateID is the parsed surrogate task_id. Otherwise
// (Slug, Number) must be resolved via getTaskByPlanAndNumber.
type ParsedID struct {
	SurrogateID int64
	Slug        string
	Number      int64
}

// ParseTaskIdFlexible accepts a bare decimal integer, a zero-padded decimal
// integer, or slug:number, per spec §4.5.
func ParseTaskIdFlexible(input string) (ParsedID, error) {
	const op = "parse task id"
	input = strings.TrimSpace(input)
	if input == "" {
		return ParsedID{}, engineerr.New(engineerr.InvalidTaskId, op)
	}

	if strings.Contains(input, ":") {
		parts := strings.Split(input, ":")
		if len(parts) != 2 {
			return ParsedID{}, engineerr.New(engineerr.InvalidTaskId, op)
		}
		slug, numStr := parts[0], parts[1]
		if slug == "" || numStr == "" {
			return ParsedID{}, engineerr.New(engineerr.InvalidTaskId, op)
		}
		n, err := parseDigits(numStr)
		if err != nil {
			return ParsedID{}, err
		}
		return ParsedID{Slug: slug, Number: n}, nil
	}

	n, err := parseDigits(input)
	if err != nil {
		return ParsedID{}, err
	}
	return ParsedID{SurrogateID: n}, nil
}

// parseDigits requires a non-empty run of ASCII digits (leading zeros
// allowed) and returns InvalidCharacter if anything else is present.
func parseDigits(s string) (int64, error) {
	if s == "" {
		return 0, engineerr.New(engineerr.InvalidTaskId, "parse task id")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, engineerr.New(engineerr.InvalidCharacter, "parse task id")
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, engineerr.New(engineerr.InvalidTaskId, "parse task id")
	}
	return n, nil
}
