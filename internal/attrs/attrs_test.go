// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package attrs

import (
	"embed"
	"testing"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// testSetCase represents a single test case for TestAttrList_Set.
type testSetCase struct {
	Name      string `yaml:"name"`
	Initial   []Attr `yaml:"initial"`
	Value     string `yaml:"value"`
	WantLen   int    `yaml:"wantLen"`
	WantAttrs []Attr `yaml:"wantAttrs"`
	WantErr   bool   `yaml:"wantErr"`
}

// testTransformCase represents a single test case for TestAttr_Transform.
type testTransformCase struct {
	Name          string      `yaml:"name"`
	TransformSpec string      `yaml:"transformSpec"`
	Input         interface{} `yaml:"input"`
	Want          interface{} `yaml:"want"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v any) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func TestAttrList_Set(t *testing.T) {
	var tests []testSetCase
	require.NoError(t, loadTestData("attrs_test_set.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			al := AttrList(tt.Initial)
			err := al.Set(tt.Value)
			if tt.WantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, al, tt.WantLen)
			for i, want := range tt.WantAttrs {
				assert.Equal(t, want, al[i])
			}
		})
	}
}

func TestAttr_Transform(t *testing.T) {
	var tests []testTransformCase
	require.NoError(t, loadTestData("attrs_test_transform.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			attr := Attr{TransformSpec: tt.TransformSpec}
			assert.Equal(t, tt.Want, attr.Transform(tt.Input))
		})
	}
}

func TestAttr_TransformTime(t *testing.T) {
	due := time.Now().Add(-72 * time.Hour)

	attr := Attr{TransformSpec: "T"}
	assert.Equal(t, humanize.Time(due), attr.Transform(due))

	attr = Attr{TransformSpec: "t"}
	assert.Equal(t, due.In(time.Local).Format("2006-01-02T15:04:05MST"), attr.Transform(due))

	attr = Attr{}
	assert.Equal(t, due, attr.Transform(due))
}

func TestAttrList_SetGlobalTransformSpec(t *testing.T) {
	al := AttrList{}
	require.NoError(t, al.Set("Firstname,Lastname::l,*::U"))
	al.SetGlobalTransformSpec()

	assert.Equal(t, "U,", al[0].TransformSpec)
	assert.Equal(t, "U,l", al[1].TransformSpec)

	first := al[0]
	last := al[1]
	assert.Equal(t, "ALICE", first.Transform("Alice"))
	assert.Equal(t, "williams", last.Transform("Williams"))

	none := AttrList{{Key: "Title", OutputKey: "Title", Include: true}}
	none.SetGlobalTransformSpec()
	assert.Equal(t, "", none[0].TransformSpec)
}

func TestAttrList_OnlyAndVisible(t *testing.T) {
	al := AttrList{
		{Key: "Firstname", OutputKey: "Firstname", Include: true},
		{Key: "Lastname", OutputKey: "Lastname", Include: true},
		{Key: "Rating", OutputKey: "Rating", Include: true},
		{Key: "*", OutputKey: "*", TransformSpec: "U"},
	}

	al.Only("Lastname", "Rating")
	visible := al.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "Lastname", visible[0].Key)
	assert.Equal(t, "Rating", visible[1].Key)

	al.Only()
	assert.Len(t, al.Visible(), 2)
}

func TestAttrList_String(t *testing.T) {
	al := AttrList{
		{Key: "Firstname", OutputKey: "first", TransformSpec: "U"},
		{Key: "Lastname", OutputKey: "Lastname"},
	}
	assert.Equal(t, "Firstname:first:U,Lastname:Lastname:", al.String())
}
