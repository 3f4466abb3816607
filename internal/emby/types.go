package emby

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// User is an Emby user account.
type User struct {
	ID     string `json:"Id"`
	Name   string `json:"Name"`
	Policy struct {
		IsAdministrator bool `json:"IsAdministrator"`
		IsDisabled      bool `json:"IsDisabled"`
	} `json:"Policy"`
}

// NameID is Emby's NameIdPair.
type NameID struct {
	Name string `json:"Name"`
	ID   string `json:"Id"`
}

// AlbumFields are the album attributes shared by every episode of an
// audiobook.
type AlbumFields struct {
	Album                string   `json:"Album"`
	AlbumID              string   `json:"AlbumId"`
	AlbumPrimaryImageTag string   `json:"AlbumPrimaryImageTag"`
	Artists              []string `json:"Artists"`
	ArtistItems          []NameID `json:"ArtistItems"`
	Composers            []NameID `json:"Composers"`
	AlbumArtist          string   `json:"AlbumArtist"`
	AlbumArtists         []NameID `json:"AlbumArtists"`
	ParentIndexNumber    *int     `json:"ParentIndexNumber"`
}

// SameAlbum reports whether a and b carry the same album attributes.
// ParentIndexNumber is not compared; nil and empty lists are equal.
func (a AlbumFields) SameAlbum(b AlbumFields) bool {
	return a.Album == b.Album &&
		a.AlbumID == b.AlbumID &&
		a.AlbumPrimaryImageTag == b.AlbumPrimaryImageTag &&
		slices.Equal(a.Artists, b.Artists) &&
		slices.Equal(a.ArtistItems, b.ArtistItems) &&
		slices.Equal(a.Composers, b.Composers) &&
		a.AlbumArtist == b.AlbumArtist &&
		slices.Equal(a.AlbumArtists, b.AlbumArtists)
}

// Item is an entry of an Items listing.
type Item struct {
	ID          string `json:"Id"`
	Name        string `json:"Name"`
	Type        string `json:"Type,omitempty"`
	Path        string `json:"Path,omitempty"`
	IndexNumber *int   `json:"IndexNumber,omitempty"`
	AlbumFields
}

type itemsResponse struct {
	Items            []Item `json:"Items"`
	TotalRecordCount int    `json:"TotalRecordCount"`
}

// ItemInfo is the full item document. It is kept untyped so an update posts
// back every field Emby sent.
type ItemInfo map[string]any

// Name returns the item name.
func (i ItemInfo) Name() string {
	s, _ := i["Name"].(string)
	return s
}

// Path returns the media file path.
func (i ItemInfo) Path() string {
	s, _ := i["Path"].(string)
	return s
}

// FileStem returns the base name of Path without its extension. Both / and
// \ separate path elements.
func (i ItemInfo) FileStem() string {
	p := i.Path()
	if idx := strings.LastIndexAny(p, `/\`); idx >= 0 {
		p = p[idx+1:]
	}
	if idx := strings.LastIndex(p, "."); idx > 0 {
		p = p[:idx]
	}
	return p
}

// SetAlbum copies the album attributes and the episode index into the item.
func (i ItemInfo) SetAlbum(a AlbumFields, index int) error {
	b, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode album fields: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return fmt.Errorf("decode album fields: %w", err)
	}
	for k, v := range fields {
		i[k] = v
	}
	i["IndexNumber"] = index
	return nil
}

// SetName sets the item name.
func (i ItemInfo) SetName(name string) {
	i["Name"] = name
}
