package display

const vertex = `
#version 420

in  vec3 vertPos;
in  vec2 vertTexCoord;
out vec2 fragTexCoord;

void main() {
    fragTexCoord = vertTexCoord;
    gl_Position  = vec4(vertPos, 1);
}

`
const fragment = `
#version 420

uniform vec3 foreground;
uniform vec3 background;

layout (binding = 0) uniform sampler2D screen;

in  vec2 fragTexCoord;
out vec4 outputColor;

void main() {
    // Pixels are stored as 0 or 1 in the red channel.
    float lit = step(0.5 / 255.0, texture(screen, fragTexCoord).r);
    outputColor = vec4(mix(background, foreground, lit), 1);
}
`
