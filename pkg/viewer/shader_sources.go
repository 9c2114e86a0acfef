package viewer

// Terrain vertex shader. Attribute locations match the Interleave layout.
const terrainVertexShader = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aUV;

uniform mat4 viewProj;

out vec3 vNormal;
out vec2 vUV;
out float vHeight;

void main() {
    vNormal = aNormal;
    vUV = aUV;
    vHeight = aPos.y;
    gl_Position = viewProj * vec4(aPos, 1.0);
}
` + "\x00"

// Terrain fragment shader: Lambert with a flat ambient term and a faint
// height tint so lineae stay readable in shadow.
const terrainFragmentShader = `
#version 410 core
in vec3 vNormal;
in vec2 vUV;
in float vHeight;

uniform vec3 sunDir;
uniform vec3 albedo;
uniform float ambient;
uniform vec2 heightRange;

out vec4 FragColor;

void main() {
    vec3 n = normalize(vNormal);
    float diffuse = max(dot(n, normalize(sunDir)), 0.0);

    float span = max(heightRange.y - heightRange.x, 1e-4);
    float t = clamp((vHeight - heightRange.x) / span, 0.0, 1.0);
    vec3 tint = mix(vec3(0.92, 0.95, 1.0), vec3(1.0, 0.97, 0.93), t);

    vec3 color = albedo * tint * (ambient + (1.0 - ambient) * diffuse);
    FragColor = vec4(pow(color, vec3(1.0 / 2.2)), 1.0);
}
` + "\x00"
