package feed

import (
	"bytes"
	"encoding/json"
	"fmt"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// listingHeader marks the module as machine output. The page renderer imports
// the default-exported array; nothing else may live in this file.
const listingHeader = "// Code generated by blogbuilder. DO NOT EDIT.\n"

// renderListing serializes the ordered records as a module with a single
// default-exported array literal.
func renderListing(posts []post.Post) ([]byte, error) {
	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return nil, errors.SerializeFailed("listing", err)
	}

	var buf bytes.Buffer
	buf.WriteString(listingHeader)
	buf.WriteString("export default ")
	buf.Write(data)
	buf.WriteString(";\n")
	return buf.Bytes(), nil
}

// ParseListing reads a generated listing module back into post records. It is
// the inverse of the listing serialization and exists so consumers (and
// round-trip tests) never re-derive records from article sources.
func ParseListing(module []byte) ([]post.Post, error) {
	rest, ok := bytes.CutPrefix(module, []byte(listingHeader))
	if !ok {
		return nil, fmt.Errorf("listing module missing generated header")
	}
	rest, ok = bytes.CutPrefix(rest, []byte("export default "))
	if !ok {
		return nil, fmt.Errorf("listing module missing default export")
	}
	rest = bytes.TrimSuffix(bytes.TrimSpace(rest), []byte(";"))

	var posts []post.Post
	if err := json.Unmarshal(rest, &posts); err != nil {
		return nil, fmt.Errorf("listing module payload: %w", err)
	}
	return posts, nil
}
