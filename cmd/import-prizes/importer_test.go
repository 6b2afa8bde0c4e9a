package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrizes(t *testing.T) {
	now := time.Unix(1700000000, 0)
	input := strings.Join([]string{
		"id,name,weight,stock,imageRef",
		"Auricular-BT,Auricular Bluetooth,10,1,https://cdn.example/bt.png",
		"gorra, Gorra ,30,20",
		"taza,Taza,0,5",
		"vaso,Vaso,5,-1",
		"mal id,Algo,1,1",
		"gorra,Otra gorra,1,1",
		"corto,Corto,1",
	}, "\n")

	prizes, skipped, err := parsePrizes(strings.NewReader(input), now)
	require.NoError(t, err)
	require.Len(t, prizes, 2)

	assert.Equal(t, "auricular-bt", prizes[0].ID)
	assert.Equal(t, 10, prizes[0].Weight)
	assert.Equal(t, 1, prizes[0].Stock)
	assert.Equal(t, "https://cdn.example/bt.png", prizes[0].ImageRef)
	assert.Equal(t, now, prizes[0].CreatedAt)

	assert.Equal(t, "gorra", prizes[1].ID)
	assert.Equal(t, "Gorra", prizes[1].Name)

	lines := make([]int, 0, len(skipped))
	for _, s := range skipped {
		lines = append(lines, s.Line)
	}
	assert.Equal(t, []int{4, 5, 6, 7, 8}, lines)
}

func TestParsePrizesWithoutHeader(t *testing.T) {
	prizes, _, err := parsePrizes(strings.NewReader("cafe,Café,5,3\n"), time.Now())
	require.NoError(t, err)
	require.Len(t, prizes, 1)
	assert.Equal(t, "cafe", prizes[0].ID)
}

func TestParsePrizesEmpty(t *testing.T) {
	_, _, err := parsePrizes(strings.NewReader("id,name,weight,stock\n"), time.Now())
	assert.Error(t, err)
}

func TestParsePrizesReorderedHeader(t *testing.T) {
	input := "stock,peso,nombre,id\n4,2,Llavero,llavero\n"
	prizes, skipped, err := parsePrizes(strings.NewReader(input), time.Now())
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, prizes, 1)
	assert.Equal(t, "llavero", prizes[0].ID)
	assert.Equal(t, 2, prizes[0].Weight)
	assert.Equal(t, 4, prizes[0].Stock)
	assert.Empty(t, prizes[0].ImageRef)
}
