package fileset

import (
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ref(name string) types.FileRef {
	return types.NewFileRef(name, []byte("content of "+name))
}

func names(files []types.FileRef) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name()
	}
	return out
}

func TestFileSet_SelectReplacesSlot(t *testing.T) {
	s := FileSet{}.SelectResume(ref("a.pdf")).SelectResume(ref("b.pdf"))

	got, ok := s.Resume()
	require.True(t, ok)
	assert.Equal(t, "b.pdf", got.Name())

	_, ok = s.JobDescription()
	assert.False(t, ok)
}

func TestFileSet_OperationsDoNotMutateReceiver(t *testing.T) {
	base := FileSet{}.AddResumes(ref("a.pdf"), ref("b.pdf"))
	next := base.AddResumes(ref("c.pdf")).RemoveResume(0)

	assert.Equal(t, []string{"a.pdf", "b.pdf"}, names(base.Resumes()))
	assert.Equal(t, []string{"b.pdf", "c.pdf"}, names(next.Resumes()))
}

func TestFileSet_AddResumesKeepsOrderAndDuplicates(t *testing.T) {
	s := FileSet{}.AddResumes(ref("a.pdf"), ref("b.pdf")).AddResumes(ref("a.pdf"))
	assert.Equal(t, []string{"a.pdf", "b.pdf", "a.pdf"}, names(s.Resumes()))
	assert.Equal(t, 3, s.ResumeCount())
}

func TestFileSet_RemoveResume(t *testing.T) {
	s := FileSet{}.AddResumes(ref("a.pdf"), ref("b.pdf"), ref("c.pdf"))

	tests := []struct {
		name  string
		index int
		want  []string
	}{
		{name: "first", index: 0, want: []string{"b.pdf", "c.pdf"}},
		{name: "middle", index: 1, want: []string{"a.pdf", "c.pdf"}},
		{name: "last", index: 2, want: []string{"a.pdf", "b.pdf"}},
		{name: "negative is a no-op", index: -1, want: []string{"a.pdf", "b.pdf", "c.pdf"}},
		{name: "past end is a no-op", index: 3, want: []string{"a.pdf", "b.pdf", "c.pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(s.RemoveResume(tt.index).Resumes()))
		})
	}
}

func TestFileSet_ResumesReturnsCopy(t *testing.T) {
	s := FileSet{}.AddResumes(ref("a.pdf"))
	out := s.Resumes()
	out[0] = ref("z.pdf")
	assert.Equal(t, []string{"a.pdf"}, names(s.Resumes()))
}

func TestFileSet_AcceptDrop(t *testing.T) {
	t.Run("single mode replaces resume", func(t *testing.T) {
		s := FileSet{}.
			AcceptDrop(types.ModeSingle, types.DropResume, ref("a.pdf")).
			AcceptDrop(types.ModeSingle, types.DropResume, ref("b.pdf"))
		got, ok := s.Resume()
		require.True(t, ok)
		assert.Equal(t, "b.pdf", got.Name())
		assert.Equal(t, 0, s.ResumeCount())
	})

	t.Run("comparison mode appends resume", func(t *testing.T) {
		s := FileSet{}.
			AcceptDrop(types.ModeComparison, types.DropResume, ref("a.pdf")).
			AcceptDrop(types.ModeComparison, types.DropResume, ref("b.pdf"))
		assert.Equal(t, []string{"a.pdf", "b.pdf"}, names(s.Resumes()))
		_, ok := s.Resume()
		assert.False(t, ok)
	})

	t.Run("job description replaces in both modes", func(t *testing.T) {
		for _, mode := range []types.Mode{types.ModeSingle, types.ModeComparison} {
			s := FileSet{}.
				AcceptDrop(mode, types.DropJobDescription, ref("jd1.pdf")).
				AcceptDrop(mode, types.DropJobDescription, ref("jd2.pdf"))
			got, ok := s.JobDescription()
			require.True(t, ok)
			assert.Equal(t, "jd2.pdf", got.Name())
		}
	})

	t.Run("unknown target is ignored", func(t *testing.T) {
		s := FileSet{}.AcceptDrop(types.ModeSingle, types.DropTarget("photo"), ref("a.png"))
		assert.True(t, s.IsEmpty())
	})
}

func TestFileSet_Reset(t *testing.T) {
	s := FileSet{}.
		SelectResume(ref("r.pdf")).
		SelectJobDescription(ref("jd.pdf")).
		AddResumes(ref("a.pdf"))
	require.False(t, s.IsEmpty())
	assert.True(t, s.Reset().IsEmpty())
}

func TestFileSet_ValidateSingle(t *testing.T) {
	tests := []struct {
		name        string
		set         FileSet
		wantMissing []string
	}{
		{name: "nothing", set: FileSet{}, wantMissing: []string{"resume", "job description"}},
		{name: "resume only", set: FileSet{}.SelectResume(ref("r.pdf")), wantMissing: []string{"job description"}},
		{name: "jd only", set: FileSet{}.SelectJobDescription(ref("jd.pdf")), wantMissing: []string{"resume"}},
		{name: "both", set: FileSet{}.SelectResume(ref("r.pdf")).SelectJobDescription(ref("jd.pdf"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set.Validate(types.ModeSingle)
			if tt.wantMissing == nil {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantMissing, vErr.Missing)
			assert.Equal(t, "Please select both files to continue", vErr.Message)
		})
	}
}

func TestFileSet_ValidateComparison(t *testing.T) {
	jd := FileSet{}.SelectJobDescription(ref("jd.pdf"))

	assert.Error(t, jd.ValidateComparison())
	assert.Error(t, jd.AddResumes(ref("a.pdf")).ValidateComparison())
	assert.NoError(t, jd.AddResumes(ref("a.pdf"), ref("b.pdf")).ValidateComparison())
	assert.Error(t, FileSet{}.AddResumes(ref("a.pdf"), ref("b.pdf")).ValidateComparison())

	// Single-mode slots do not count toward a comparison.
	single := jd.SelectResume(ref("r.pdf")).AddResumes(ref("a.pdf"))
	assert.Error(t, single.Validate(types.ModeComparison))
}
