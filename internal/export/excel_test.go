package export

import (
	"bytes"
	"testing"

	"offerbase/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRenderTable(t *testing.T) {
	rows := []model.OfferExportRow{
		{
			Offer: model.Offer{
				ID:         2,
				SourceName: "1win",
				OfferName:  "Aviator",
				Geo:        "Romania (Румыния)",
				Rate:       "45$",
				Guarantee:  "5 cap",
				Note:       "Тест",
				Status:     model.StatusActive,
				OwnerID:    100,
			},
			OwnerUsername: "manager_one",
		},
		{
			Offer: model.Offer{
				ID:         1,
				SourceName: "PIN",
				OfferName:  "Slots",
				Geo:        "Global (WW)",
				Rate:       "30$",
				Note:       "-",
				Status:     model.StatusArchived,
			},
		},
	}

	data, err := RenderTable(rows)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Offers"}, f.GetSheetList())

	got, err := f.GetRows("Offers")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, []string{"ID", "Source", "Offer", "Geo", "Rate", "Guarantee", "Note", "Status", "Added by"}, got[0])
	assert.Equal(t, "2", got[1][0])
	assert.Equal(t, "1win", got[1][1])
	assert.Equal(t, "Romania (Румыния)", got[1][3])
	assert.Equal(t, "100 / @manager_one", got[1][8])
	assert.Equal(t, "archived", got[2][7])
	assert.Equal(t, "-", got[2][8])
}

func TestRenderTable_Empty(t *testing.T) {
	data, err := RenderTable(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Offers")
	require.NoError(t, err)
	require.Len(t, got, 1, "only the header row")
}

func TestOwnerLabel(t *testing.T) {
	assert.Equal(t, "-", OwnerLabel(model.OfferExportRow{}))
	assert.Equal(t, "100", OwnerLabel(model.OfferExportRow{Offer: model.Offer{OwnerID: 100}}))
	assert.Equal(t, "100 / @boss", OwnerLabel(model.OfferExportRow{
		Offer:         model.Offer{OwnerID: 100},
		OwnerUsername: "boss",
	}))
}
