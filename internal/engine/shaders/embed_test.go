package shaders

import (
	"io/fs"
	"strings"
	"testing"
)

func TestSourcesEmbedded(t *testing.T) {
	names := []string{
		SceneVert, SceneFrag, DepthVert, DepthFrag, GlowVert,
		GlowFrag, QuadVert, QuadFrag, SkyboxVert, SkyboxFrag,
	}
	for _, name := range names {
		src, err := fs.ReadFile(FS, name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if !strings.HasPrefix(string(src), "#version 410 core") {
			t.Errorf("%s does not target GLSL 410 core", name)
		}
	}
}

func TestUniformNamesMatchPipeline(t *testing.T) {
	tests := map[string][]string{
		SceneVert: {"model", "view", "projection", "normalMatrix", "lightSpaceTrMatrix"},
		SceneFrag: {"lightDir", "lightColor", "pointLightPositions[POINT_LIGHTS]", "pointLightColors[POINT_LIGHTS]", "shadowMap"},
		DepthVert: {"model", "lightSpaceTrMatrix"},
		GlowFrag:  {"lightColor"},
		QuadFrag:  {"depthMap"},
	}
	for name, uniforms := range tests {
		src, err := fs.ReadFile(FS, name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for _, u := range uniforms {
			if !strings.Contains(string(src), " "+u+";") {
				t.Errorf("%s does not declare uniform %s", name, u)
			}
		}
	}
}
