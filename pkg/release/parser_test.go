package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want Meta
	}{
		{
			name: "The.Last.of.Us.S01E03.2160p.WEB-DL.DDP5.1.Atmos.DV.HDR.H.265-FLUX.mkv",
			want: Meta{
				Title: "The Last of Us", Season: 1, Episode: 3,
				ResourcePix: "2160p", ResourceType: "WEB-DL", ResourceEffect: "DV HDR Atmos",
				ResourceTeam: "FLUX", VideoCodec: "H.265",
			},
		},
		{
			name: "Fargo.S05.1080p.BluRay.x264-CHD",
			want: Meta{
				Title: "Fargo", Season: 5,
				ResourcePix: "1080p", ResourceType: "BluRay", ResourceTeam: "CHD", VideoCodec: "x264",
			},
		},
		{
			name: "Dune.2021.UHD.BluRay.2160p.REMUX.HEVC.HDR10-FraMeSToR",
			want: Meta{
				Title: "Dune", Year: 2021,
				ResourcePix: "2160p", ResourceType: "UHD BluRay Remux", ResourceEffect: "HDR10",
				ResourceTeam: "FraMeSToR", VideoCodec: "HEVC",
			},
		},
		{
			name: "Show.S02E01.720p.HDTV.x264",
			want: Meta{
				Title: "Show", Season: 2, Episode: 1,
				ResourcePix: "720p", ResourceType: "HDTV", VideoCodec: "x264",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.name)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParse_TrailingSourceIsNotTeam(t *testing.T) {
	got := Parse("Show.S01.1080p.WEB-DL")
	assert.Equal(t, "WEB-DL", got.ResourceType)
	assert.Empty(t, got.ResourceTeam)
}

func TestParse_Empty(t *testing.T) {
	got := Parse("  ")
	assert.True(t, got.Empty())
}

func TestParse_ClassifiesIntoTables(t *testing.T) {
	m := Parse("Severance.S02E01.2160p.ATVP.WEB-DL.DDP5.1.DV.H.265-NTb")
	assert.Equal(t, Pattern2160p, ResolutionTable.Normalize(m.ResourcePix))
	assert.Equal(t, PatternWEB, SourceTable.Normalize(m.ResourceType))
	assert.Equal(t, "NTb", m.ResourceTeam)
}
