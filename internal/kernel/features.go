// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package kernel

import "github.com/klauspost/cpuid/v2"

// Features captures the static, process-wide flags the renderer
// dispatcher (C3) is keyed on, mirroring the AVX2 gate the teacher uses
// to pick its median3x3AVX2 vs. pure-Go fallback.
type Features struct {
	// SIMDAvailable is true when the host CPU exposes the vector ISA the
	// fast kernels are written for (AVX2 on amd64).
	SIMDAvailable bool
	// FastPower selects the ssePower-style approximate power path over
	// the exact math.Pow path. Disabled by default: the spec requires
	// the fast path stay within 1 ULP of scalar pow, and math.Pow is
	// already that precise, so FastPower only matters for callers that
	// explicitly opt into a faster, slightly coarser kernel.
	FastPower bool
}

// DetectFeatures probes the host CPU once. Callers build a dispatcher
// from the result; it is never re-probed on the hot path.
func DetectFeatures() Features {
	return Features{
		SIMDAvailable: cpuid.CPU.Supports(cpuid.AVX2),
		FastPower:     false,
	}
}
