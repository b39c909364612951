package changelog

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/baiqizhang/CopyCat-Server/internal/entity"
	"github.com/baiqizhang/CopyCat-Server/internal/repo/persistent"
	"github.com/stretchr/testify/require"
)

type failingRepo struct {
	loaded *entity.Changelog
}

func (r *failingRepo) Load(_ context.Context) (*entity.Changelog, error) {
	return r.loaded, nil
}

func (r *failingRepo) Save(_ context.Context, _ *entity.Changelog) error {
	return errors.New("read-only file system")
}

func newFileBacked(t *testing.T) (*ChangelogUseCase, *persistent.ChangelogFileRepo) {
	t.Helper()

	r := persistent.NewChangelogFileRepo(filepath.Join(t.TempDir(), "changeLog", "copycat-change.log"))
	uc, err := New(context.Background(), r)
	require.NoError(t, err)

	return uc, r
}

func TestWhatsNew_AfterAppends(t *testing.T) {
	uc, _ := newFileBacked(t)
	ctx := context.Background()

	for i, e := range []entity.ChangelogEntry{
		{CN: "cn-1", ENG: "eng-1"},
		{CN: "cn-2", ENG: "eng-2"},
		{CN: "cn-3", ENG: "eng-3"},
	} {
		v, err := uc.Append(ctx, e.CN, e.ENG)
		require.NoError(t, err)
		require.Equal(t, i+1, v)
	}

	got := uc.WhatsNew(0, "zh")
	require.Equal(t, 3, got.CurVersion)
	require.Equal(t,
		`<body style="background-color: #f2eeed;"><ol>`+
			`<li style='font-size: 14px;'>eng-1</li>`+
			`<li style='font-size: 14px;'>eng-2</li>`+
			`<li style='font-size: 14px;'>eng-3</li>`+
			`</ol></body>`,
		got.HTML)

	require.Equal(t, 3, strings.Count(got.HTML, "<li"))
}

func TestWhatsNew_Ranges(t *testing.T) {
	uc, _ := newFileBacked(t)
	ctx := context.Background()

	for _, s := range []string{"1", "2", "3"} {
		_, err := uc.Append(ctx, "cn-"+s, "eng-"+s)
		require.NoError(t, err)
	}

	tests := []struct {
		name    string
		version int
		lang    string
		want    []string
	}{
		{name: "newer than 1", version: 1, lang: "zh", want: []string{"eng-2", "eng-3"}},
		{name: "up to date", version: 3, lang: "zh", want: nil},
		{name: "ahead of server", version: 9, lang: "zh", want: nil},
		{name: "negative version", version: -5, lang: "zh", want: []string{"eng-1", "eng-2", "eng-3"}},
		{name: "lang containing en selects cn", version: 2, lang: "en-US", want: []string{"cn-3"}},
		{name: "empty lang selects eng", version: 2, lang: "", want: []string{"eng-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := uc.WhatsNew(tt.version, tt.lang)
			require.Equal(t, 3, got.CurVersion)

			var want strings.Builder
			want.WriteString(htmlOpen)
			for _, w := range tt.want {
				want.WriteString(itemOpen + w + itemClose)
			}
			want.WriteString(htmlClose)

			require.Equal(t, want.String(), got.HTML)
		})
	}
}

func TestReset(t *testing.T) {
	uc, r := newFileBacked(t)
	ctx := context.Background()

	_, err := uc.Append(ctx, "cn", "eng")
	require.NoError(t, err)

	require.NoError(t, uc.Reset(ctx))

	got := uc.WhatsNew(0, "en")
	require.Equal(t, 0, got.CurVersion)
	require.Equal(t, htmlOpen+htmlClose, got.HTML)

	stored, err := r.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, entity.NewChangelog(), stored)
}

func TestAppend_PersistsBeforeSwap(t *testing.T) {
	uc, r := newFileBacked(t)
	ctx := context.Background()

	_, err := uc.Append(ctx, "cn", "eng")
	require.NoError(t, err)

	stored, err := r.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, stored.CurVersion)
	require.Equal(t, entity.ChangelogEntry{CN: "cn", ENG: "eng"}, stored.Histories["1"])

	reloaded, err := New(ctx, r)
	require.NoError(t, err)
	require.Equal(t, uc.WhatsNew(0, "zh"), reloaded.WhatsNew(0, "zh"))
}

func TestAppend_SaveErrorLeavesStateUnchanged(t *testing.T) {
	uc, err := New(context.Background(), &failingRepo{loaded: entity.NewChangelog()})
	require.NoError(t, err)

	_, err = uc.Append(context.Background(), "cn", "eng")
	require.Error(t, err)
	require.Equal(t, 0, uc.WhatsNew(0, "zh").CurVersion)

	require.Error(t, uc.Reset(context.Background()))
}
